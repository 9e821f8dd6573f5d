// Package app implements the application layer for pantslock.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DLukeNelson/pants/internal/core/domain"
	"github.com/DLukeNelson/pants/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// defaultDelimiter is the comment delimiter used when none is specified.
const defaultDelimiter = "#"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	codec        ports.LockfileCodec
	logger       ports.Logger
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	codec ports.LockfileCodec,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		codec:        codec,
		logger:       log,
		tracer:       tracer,
	}
}

// VerifyOptions configuration for the Verify method.
type VerifyOptions struct {
	// Resolve names the resolve to validate against. Empty selects the sole
	// configured resolve.
	Resolve string
	// Tool forces tool semantics (exact requirement equality) regardless of
	// the resolve's configuration.
	Tool bool
	// Delimiter overrides the comment delimiter used in lockfile headers.
	Delimiter string
}

// Verify checks each lockfile's embedded metadata against the configured
// resolve. All lockfiles are checked concurrently; a stale or unreadable
// header is reported per lockfile and the aggregate failure is returned as
// domain.ErrLockfileStale.
func (a *App) Verify(ctx context.Context, lockfilePaths []string, opts VerifyOptions) error {
	if len(lockfilePaths) == 0 {
		return domain.ErrNoLockfilesSpecified
	}

	set, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	resolve, err := set.Resolve(opts.Resolve)
	if err != nil {
		return err
	}

	if opts.Tool && !resolve.IsTool {
		forced := *resolve
		forced.IsTool = true
		resolve = &forced
	}

	request := resolve.ValidationRequest(set.InterpreterUniverse())

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = defaultDelimiter
	}

	stale := make([]bool, len(lockfilePaths))
	g, ctx := errgroup.WithContext(ctx)

	for i, path := range lockfilePaths {
		g.Go(func() error {
			isStale, verifyErr := a.verifyLockfile(ctx, path, resolve, request, delimiter)
			if verifyErr != nil {
				return verifyErr
			}
			stale[i] = isStale
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	staleCount := 0
	for _, s := range stale {
		if s {
			staleCount++
		}
	}
	if staleCount > 0 {
		return zerr.With(domain.ErrLockfileStale, "stale", staleCount)
	}

	a.logger.Info(fmt.Sprintf("verified %d lockfile(s) against resolve %q", len(lockfilePaths), resolve.Name))
	return nil
}

// verifyLockfile checks one lockfile and reports whether it is stale. Hard
// failures (unreadable file, unparseable constraints) are returned as errors;
// staleness is logged and returned as a flag so remaining lockfiles still get
// checked.
func (a *App) verifyLockfile(
	ctx context.Context,
	path string,
	resolve *domain.ResolveConfig,
	request domain.ValidationRequest,
	delimiter string,
) (bool, error) {
	_, span := a.tracer.Start(ctx, "verify_lockfile")
	defer span.End()
	span.SetAttribute("lockfile.path", path)
	span.SetAttribute("resolve", resolve.Name)

	data, err := os.ReadFile(path)
	if err != nil {
		err = zerr.With(errors.Join(domain.ErrLockfileReadFailed, err), "path", path)
		span.RecordError(err)
		return false, err
	}

	metadata, err := a.codec.ReadMetadata(data, resolve.Name, delimiter)
	switch {
	case errors.Is(err, domain.ErrMissingMetadataHeader):
		span.RecordError(err)
		a.logger.Warn(fmt.Sprintf("%s: no metadata header found; regenerate with: %s", path, resolve.RegenerateCommand))
		return true, nil
	case err != nil:
		span.RecordError(err)
		a.logger.Error(zerr.With(err, "path", path))
		return true, nil
	}

	span.SetAttribute("metadata.version", metadata.Version())

	result, err := metadata.IsValidFor(request)
	if err != nil {
		span.RecordError(err)
		return false, zerr.With(err, "path", path)
	}

	if result.Valid() {
		a.logger.Info(fmt.Sprintf("%s: lockfile is up to date (metadata v%d)", path, metadata.Version()))
		return false, nil
	}

	reasons := result.Reasons()
	span.SetAttribute("mismatches", len(reasons))

	a.logger.Warn(fmt.Sprintf("%s: lockfile is stale for resolve %q:", path, resolve.Name))
	for _, reason := range reasons {
		a.logger.Warn("  - " + reason.Description())
	}
	a.logger.Warn("to regenerate, run: " + resolve.RegenerateCommand)

	return true, nil
}

// HeaderOptions configuration for the Header method.
type HeaderOptions struct {
	Resolve   string
	Delimiter string
}

// Header decodes the metadata header of a lockfile and writes a human
// readable summary to w.
func (a *App) Header(ctx context.Context, lockfilePath string, w io.Writer, opts HeaderOptions) error {
	_, span := a.tracer.Start(ctx, "read_header")
	defer span.End()
	span.SetAttribute("lockfile.path", lockfilePath)

	data, err := os.ReadFile(lockfilePath)
	if err != nil {
		err = zerr.With(errors.Join(domain.ErrLockfileReadFailed, err), "path", lockfilePath)
		span.RecordError(err)
		return err
	}

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = defaultDelimiter
	}

	metadata, err := a.codec.ReadMetadata(data, opts.Resolve, delimiter)
	if err != nil {
		span.RecordError(err)
		return err
	}

	writeMetadata(w, metadata)
	return nil
}

func writeMetadata(w io.Writer, m domain.Metadata) {
	_, _ = fmt.Fprintf(w, "version: %d\n", m.Version())

	switch v := m.(type) {
	case *domain.MetadataV1:
		writeList(w, "interpreter constraints", v.ValidForInterpreterConstraints.Specifiers())
		_, _ = fmt.Fprintf(w, "requirements invalidation digest: %s\n", v.RequirementsDigest)
	case *domain.MetadataV2:
		writeList(w, "interpreter constraints", v.ValidForInterpreterConstraints.Specifiers())
		writeList(w, "generated with requirements", v.GeneratedWithRequirements.Sorted())
	case *domain.MetadataV3:
		writeList(w, "interpreter constraints", v.ValidForInterpreterConstraints.Specifiers())
		writeList(w, "generated with requirements", v.GeneratedWithRequirements.Sorted())

		manylinux := "none"
		if v.Manylinux != nil {
			manylinux = *v.Manylinux
		}
		_, _ = fmt.Fprintf(w, "manylinux: %s\n", manylinux)

		writeList(w, "requirement constraints", v.RequirementConstraints.Sorted())
		writeList(w, "only binary", v.OnlyBinary.Sorted())
		writeList(w, "no binary", v.NoBinary.Sorted())
	}
}

func writeList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		_, _ = fmt.Fprintf(w, "%s: (none)\n", label)
		return
	}
	_, _ = fmt.Fprintf(w, "%s:\n", label)
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "  - %s\n", item)
	}
}
