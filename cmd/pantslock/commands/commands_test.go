package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DLukeNelson/pants/cmd/pantslock/commands"
	"github.com/DLukeNelson/pants/internal/app"
	"github.com/DLukeNelson/pants/internal/build"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockApp struct {
	verifyFunc func(ctx context.Context, lockfilePaths []string, opts app.VerifyOptions) error
	headerFunc func(ctx context.Context, lockfilePath string, w io.Writer, opts app.HeaderOptions) error
}

func (m *mockApp) Verify(ctx context.Context, lockfilePaths []string, opts app.VerifyOptions) error {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, lockfilePaths, opts)
	}
	return nil
}

func (m *mockApp) Header(ctx context.Context, lockfilePath string, w io.Writer, opts app.HeaderOptions) error {
	if m.headerFunc != nil {
		return m.headerFunc(ctx, lockfilePath, w, opts)
	}
	return nil
}

func TestCommands_Verify(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.VerifyOptions
		var capturedPaths []string
		called := false

		mock := &mockApp{
			verifyFunc: func(_ context.Context, lockfilePaths []string, opts app.VerifyOptions) error {
				capturedOpts = opts
				capturedPaths = lockfilePaths
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"verify", "default.lock", "--resolve", "flake8", "--tool", "--delimiter", "//"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "flake8", capturedOpts.Resolve)
		assert.True(t, capturedOpts.Tool)
		assert.Equal(t, "//", capturedOpts.Delimiter)
		assert.Equal(t, []string{"default.lock"}, capturedPaths)
	})

	t.Run("returns error on verify failure", func(t *testing.T) {
		mock := &mockApp{
			verifyFunc: func(_ context.Context, _ []string, _ app.VerifyOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"verify", "default.lock"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no lockfiles provided", func(t *testing.T) {
		mock := &mockApp{
			verifyFunc: func(_ context.Context, _ []string, _ app.VerifyOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"verify"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Header(t *testing.T) {
	t.Run("writes to command output", func(t *testing.T) {
		mock := &mockApp{
			headerFunc: func(_ context.Context, lockfilePath string, w io.Writer, _ app.HeaderOptions) error {
				assert.Equal(t, "default.lock", lockfilePath)
				_, err := io.WriteString(w, "version: 3\n")
				return err
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"header", "default.lock"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "version: 3")
	})

	t.Run("requires exactly one lockfile", func(t *testing.T) {
		mock := &mockApp{}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"header"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
	})
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
