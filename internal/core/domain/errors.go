package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingMetadataHeader is returned when a lockfile carries no metadata header at all.
	// Callers treat this as "lockfile must be generated", not as corruption.
	ErrMissingMetadataHeader = zerr.New("lockfile has no metadata header")

	// ErrMalformedMetadataHeader is returned when the metadata header sentinels are
	// incomplete or the serialized form cannot be decoded.
	ErrMalformedMetadataHeader = zerr.New("lockfile metadata header is malformed")

	// ErrUnknownMetadataVersion is returned when the header declares a metadata
	// version this build does not understand.
	ErrUnknownMetadataVersion = zerr.New("unknown lockfile metadata version")

	// ErrInvalidConstraintExpression is returned when an interpreter constraint
	// expression cannot be parsed.
	ErrInvalidConstraintExpression = zerr.New("invalid interpreter constraint expression")

	// ErrInvalidUniverseVersion is returned when an interpreter universe entry is not
	// a major.minor version string.
	ErrInvalidUniverseVersion = zerr.New("invalid interpreter universe version")

	// ErrEmptyInterpreterUniverse is returned when a compatibility check is attempted
	// against an empty interpreter universe.
	ErrEmptyInterpreterUniverse = zerr.New("interpreter universe is empty")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no pants-lock.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find pants-lock.yaml")

	// ErrInvalidResolveName is returned when a resolve name contains invalid characters.
	ErrInvalidResolveName = zerr.New("resolve name can only contain alphanumeric characters, hyphens and underscores")

	// ErrResolveNotFound is returned when a requested resolve is not defined in the configuration.
	ErrResolveNotFound = zerr.New("resolve not defined in configuration")

	// ErrNoResolvesDefined is returned when the configuration defines no resolves.
	ErrNoResolvesDefined = zerr.New("no resolves defined in configuration")

	// ErrLockfileReadFailed is returned when a lockfile cannot be read from disk.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileStale is returned when a lockfile no longer matches the current
	// resolve configuration and must be regenerated.
	ErrLockfileStale = zerr.New("lockfile is stale and must be regenerated")

	// ErrNoLockfilesSpecified is returned when the verify command is invoked without targets.
	ErrNoLockfilesSpecified = zerr.New("no lockfiles specified")
)
