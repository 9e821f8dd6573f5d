package ports

import "github.com/DLukeNelson/pants/internal/core/domain"

// LockfileCodec embeds metadata into lockfile bytes and extracts it again.
//
//go:generate mockgen -source=codec.go -destination=mocks/mock_codec.go -package=mocks
type LockfileCodec interface {
	// AddHeader prepends a metadata header to the lockfile body. The body is
	// carried through byte-for-byte.
	AddHeader(m domain.Metadata, body []byte, regenerateCommand, delimiter string) ([]byte, error)

	// ReadMetadata locates and decodes the metadata header in a lockfile.
	// A lockfile without any header yields domain.ErrMissingMetadataHeader;
	// a corrupt header yields domain.ErrMalformedMetadataHeader. resolveName
	// is used for error context only.
	ReadMetadata(lockfile []byte, resolveName, delimiter string) (domain.Metadata, error)
}
