package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DLukeNelson/pants/internal/app"
	"github.com/DLukeNelson/pants/internal/core/domain"
	"github.com/DLukeNelson/pants/internal/core/ports"
	"github.com/DLukeNelson/pants/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	loader *mocks.MockConfigLoader
	codec  *mocks.MockLockfileCodec
	logger *mocks.MockLogger
	tracer *mocks.MockTracer
	span   *mocks.MockSpan
}

// newTestApp builds an App over permissive mocks. Individual tests add the
// strict expectations they care about.
func newTestApp(t *testing.T) (*app.App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &appMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		codec:  mocks.NewMockLockfileCodec(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		tracer: mocks.NewMockTracer(ctrl),
		span:   mocks.NewMockSpan(ctrl),
	}

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, m.span
		},
	).AnyTimes()
	m.span.EXPECT().End().AnyTimes()
	m.span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	return app.New(m.loader, m.codec, m.logger, m.tracer), m
}

// testResolveSet builds a single-resolve configuration over a small universe.
func testResolveSet(requirements ...string) *domain.ResolveSet {
	set := domain.NewResolveSet([]string{"3.8", "3.9"})
	set.Add(&domain.ResolveConfig{
		Name:                   "python-default",
		InterpreterConstraints: domain.NewInterpreterConstraints(">=3.8"),
		Requirements:           domain.NewRequirementSet(requirements...),
		RegenerateCommand:      "./pants generate-lockfiles --resolve=python-default",
	})
	return set
}

// matchingMetadata builds v3 metadata that validates cleanly against
// testResolveSet with the same requirements.
func matchingMetadata(requirements ...string) *domain.MetadataV3 {
	return domain.NewMetadata(
		domain.NewInterpreterConstraints(">=3.8"),
		domain.NewRequirementSet(requirements...),
		nil,
		domain.NewRequirementSet(),
		domain.NewRequirementSet(),
		domain.NewRequirementSet(),
	)
}

func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "default.lock")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApp_Verify_NoLockfiles(t *testing.T) {
	a, _ := newTestApp(t)

	err := a.Verify(t.Context(), nil, app.VerifyOptions{})
	assert.ErrorIs(t, err, domain.ErrNoLockfilesSpecified)
}

func TestApp_Verify_ConfigLoadError(t *testing.T) {
	a, m := newTestApp(t)
	m.loader.EXPECT().Load(".").Return(nil, zerr.New("config load error"))

	err := a.Verify(t.Context(), []string{"default.lock"}, app.VerifyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Verify_UnknownResolve(t *testing.T) {
	a, m := newTestApp(t)
	m.loader.EXPECT().Load(".").Return(testResolveSet("requests"), nil)

	err := a.Verify(t.Context(), []string{"default.lock"}, app.VerifyOptions{Resolve: "nope"})
	assert.ErrorIs(t, err, domain.ErrResolveNotFound)
}

func TestApp_Verify_UpToDate(t *testing.T) {
	a, m := newTestApp(t)
	path := writeLockfile(t, "lockfile body")

	m.loader.EXPECT().Load(".").Return(testResolveSet("requests"), nil)
	m.codec.EXPECT().ReadMetadata(gomock.Any(), "python-default", "#").
		Return(matchingMetadata("requests"), nil)

	err := a.Verify(t.Context(), []string{path}, app.VerifyOptions{})
	assert.NoError(t, err)
}

func TestApp_Verify_Stale(t *testing.T) {
	a, m := newTestApp(t)
	path := writeLockfile(t, "lockfile body")

	m.loader.EXPECT().Load(".").Return(testResolveSet("requests", "flake8"), nil)
	m.codec.EXPECT().ReadMetadata(gomock.Any(), "python-default", "#").
		Return(matchingMetadata("requests"), nil)

	err := a.Verify(t.Context(), []string{path}, app.VerifyOptions{})
	assert.ErrorIs(t, err, domain.ErrLockfileStale)
}

func TestApp_Verify_MissingHeaderIsStale(t *testing.T) {
	a, m := newTestApp(t)
	path := writeLockfile(t, "no header here")

	m.loader.EXPECT().Load(".").Return(testResolveSet("requests"), nil)
	m.codec.EXPECT().ReadMetadata(gomock.Any(), "python-default", "#").
		Return(nil, domain.ErrMissingMetadataHeader)
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	err := a.Verify(t.Context(), []string{path}, app.VerifyOptions{})
	assert.ErrorIs(t, err, domain.ErrLockfileStale)
}

func TestApp_Verify_MalformedHeaderIsStale(t *testing.T) {
	a, m := newTestApp(t)
	path := writeLockfile(t, "garbage")

	m.loader.EXPECT().Load(".").Return(testResolveSet("requests"), nil)
	m.codec.EXPECT().ReadMetadata(gomock.Any(), "python-default", "#").
		Return(nil, domain.ErrMalformedMetadataHeader)

	err := a.Verify(t.Context(), []string{path}, app.VerifyOptions{})
	assert.ErrorIs(t, err, domain.ErrLockfileStale)
}

func TestApp_Verify_ReadFailure(t *testing.T) {
	a, m := newTestApp(t)

	m.loader.EXPECT().Load(".").Return(testResolveSet("requests"), nil)

	err := a.Verify(t.Context(), []string{filepath.Join(t.TempDir(), "missing.lock")}, app.VerifyOptions{})
	assert.ErrorIs(t, err, domain.ErrLockfileReadFailed)
}

func TestApp_Verify_ToolOverride(t *testing.T) {
	// A user resolve accepts a lockfile generated with extra requirements,
	// but --tool demands exact equality.
	a, m := newTestApp(t)
	path := writeLockfile(t, "lockfile body")

	m.loader.EXPECT().Load(".").Return(testResolveSet("requests"), nil).Times(2)
	m.codec.EXPECT().ReadMetadata(gomock.Any(), "python-default", "#").
		Return(matchingMetadata("requests", "extra-dep"), nil).Times(2)

	err := a.Verify(t.Context(), []string{path}, app.VerifyOptions{})
	assert.NoError(t, err)

	err = a.Verify(t.Context(), []string{path}, app.VerifyOptions{Tool: true})
	assert.ErrorIs(t, err, domain.ErrLockfileStale)
}

func TestApp_Verify_MultipleLockfiles(t *testing.T) {
	a, m := newTestApp(t)
	goodPath := writeLockfile(t, "good")
	stalePath := writeLockfile(t, "stale")

	m.loader.EXPECT().Load(".").Return(testResolveSet("requests"), nil)
	m.codec.EXPECT().ReadMetadata([]byte("good"), "python-default", "#").
		Return(matchingMetadata("requests"), nil)
	m.codec.EXPECT().ReadMetadata([]byte("stale"), "python-default", "#").
		Return(matchingMetadata("something-else"), nil)

	err := a.Verify(t.Context(), []string{goodPath, stalePath}, app.VerifyOptions{})
	assert.ErrorIs(t, err, domain.ErrLockfileStale)
}

func TestApp_Header(t *testing.T) {
	a, m := newTestApp(t)
	path := writeLockfile(t, "lockfile body")

	manylinux := "manylinux2014"
	metadata := domain.NewMetadata(
		domain.NewInterpreterConstraints("CPython>=3.8"),
		domain.NewRequirementSet("requests==2.28.0"),
		&manylinux,
		domain.NewRequirementSet(),
		domain.NewRequirementSet(),
		domain.NewRequirementSet(),
	)
	m.codec.EXPECT().ReadMetadata(gomock.Any(), "", "#").Return(metadata, nil)

	var buf bytes.Buffer
	err := a.Header(t.Context(), path, &buf, app.HeaderOptions{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "version: 3")
	assert.Contains(t, out, "CPython>=3.8")
	assert.Contains(t, out, "requests==2.28.0")
	assert.Contains(t, out, "manylinux: manylinux2014")
}

func TestApp_Header_V1(t *testing.T) {
	a, m := newTestApp(t)
	path := writeLockfile(t, "lockfile body")

	metadata := &domain.MetadataV1{
		ValidForInterpreterConstraints: domain.NewInterpreterConstraints(">=3.8"),
		RequirementsDigest:             "00000000075db24e",
	}
	m.codec.EXPECT().ReadMetadata(gomock.Any(), "", "#").Return(metadata, nil)

	var buf bytes.Buffer
	err := a.Header(t.Context(), path, &buf, app.HeaderOptions{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "requirements invalidation digest: 00000000075db24e")
}

func TestApp_Header_ReadFailure(t *testing.T) {
	a, _ := newTestApp(t)

	var buf bytes.Buffer
	err := a.Header(t.Context(), filepath.Join(t.TempDir(), "missing.lock"), &buf, app.HeaderOptions{})
	assert.ErrorIs(t, err, domain.ErrLockfileReadFailed)
}
