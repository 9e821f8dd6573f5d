package logger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DLukeNelson/pants/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{
			name:         "nil error",
			err:          nil,
			wantMessages: nil,
		},
		{
			name:         "single standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
		},
		{
			name:         "stdlib wrapped chain collapses",
			err:          fmt.Errorf("outer: %w", errors.New("inner")),
			wantMessages: []string{"outer: inner"},
		},
		{
			name: "zerr wrapped chain",
			err: zerr.Wrap(
				zerr.Wrap(
					errors.New("root cause"),
					"middle layer",
				),
				"outer layer",
			),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			assert.Len(t, entries, len(tt.wantMessages))
			for i, wantMsg := range tt.wantMessages {
				assert.Equal(t, wantMsg, entries[i].Message, "message mismatch at index %d", i)
			}
		})
	}
}

func TestCollectErrorEntries_Metadata(t *testing.T) {
	err := zerr.With(
		zerr.With(
			zerr.New("base error"),
			"key1", "value1",
		),
		"key2", 42,
	)

	entries := logger.CollectErrorEntries(err)

	assert.Len(t, entries, 1)
	assert.Equal(t, "base error", entries[0].Message)
	assert.Equal(t, map[string]any{"key1": "value1", "key2": 42}, entries[0].Metadata)
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name: "single entry",
			entries: []logger.ErrorEntry{
				{Message: "single error"},
			},
			want: "Error: single error",
		},
		{
			name: "two entries with caused by",
			entries: []logger.ErrorEntry{
				{Message: "outer"},
				{Message: "inner"},
			},
			want: "Error: outer\n\n  Caused by:\n    → inner",
		},
		{
			name: "multiline first entry indents continuation",
			entries: []logger.ErrorEntry{
				{Message: "first line\nsecond line"},
			},
			want: "Error: first line\n       second line",
		},
		{
			name: "metadata sorted by key",
			entries: []logger.ErrorEntry{
				{Message: "stale", Metadata: map[string]any{"resolve": "flake8", "path": "a.lock"}},
			},
			want: "Error: stale (path=a.lock, resolve=flake8)",
		},
		{
			name: "metadata on cause entry",
			entries: []logger.ErrorEntry{
				{Message: "outer"},
				{Message: "inner", Metadata: map[string]any{"count": 2}},
			},
			want: "Error: outer\n\n  Caused by:\n    → inner (count=2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
