// Package lockfile embeds resolve metadata into lockfile artifacts as a
// delimited comment header and extracts it again. The header format is fixed
// for compatibility: a regeneration hint, BEGIN/END sentinels, and a JSON
// body with every line prefixed by the comment delimiter.
package lockfile

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/DLukeNelson/pants/internal/core/domain"
	"github.com/DLukeNelson/pants/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	beginSentinel = "--- BEGIN PANTS LOCKFILE METADATA: DO NOT EDIT OR REMOVE ---"
	endSentinel   = "--- END PANTS LOCKFILE METADATA ---"
)

var _ ports.LockfileCodec = (*Codec)(nil)

// Codec implements ports.LockfileCodec.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// headerV1 is the serialized form of the first metadata generation, which
// recorded only a digest of the requirements.
type headerV1 struct {
	Version                        int      `json:"version"`
	ValidForInterpreterConstraints []string `json:"valid_for_interpreter_constraints"`
	RequirementsInvalidationDigest string   `json:"requirements_invalidation_digest"`
}

// headerV2 added the requirement list itself.
type headerV2 struct {
	Version                        int      `json:"version"`
	ValidForInterpreterConstraints []string `json:"valid_for_interpreter_constraints"`
	GeneratedWithRequirements      []string `json:"generated_with_requirements"`
}

// headerV3 added the platform and binary policy fields.
type headerV3 struct {
	Version                        int      `json:"version"`
	ValidForInterpreterConstraints []string `json:"valid_for_interpreter_constraints"`
	GeneratedWithRequirements      []string `json:"generated_with_requirements"`
	Manylinux                      *string  `json:"manylinux"`
	RequirementConstraints         []string `json:"requirement_constraints"`
	OnlyBinary                     []string `json:"only_binary"`
	NoBinary                       []string `json:"no_binary"`
}

// AddHeader implements ports.LockfileCodec. The lockfile body is appended
// unmodified after the header block.
func (c *Codec) AddHeader(m domain.Metadata, body []byte, regenerateCommand, delimiter string) ([]byte, error) {
	dto, err := headerFor(m)
	if err != nil {
		return nil, err
	}

	encoded, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode metadata header")
	}

	var header strings.Builder
	writeLine := func(content string) {
		if content == "" {
			header.WriteString(delimiter)
		} else {
			header.WriteString(delimiter + " " + content)
		}
		header.WriteByte('\n')
	}

	writeLine("This lockfile was autogenerated by Pants. To regenerate, run:")
	writeLine("")
	writeLine("   " + regenerateCommand)
	writeLine("")
	writeLine(beginSentinel)
	for _, line := range strings.Split(string(encoded), "\n") {
		writeLine(line)
	}
	writeLine(endSentinel)

	out := make([]byte, 0, header.Len()+len(body))
	out = append(out, header.String()...)
	out = append(out, body...)
	return out, nil
}

// ReadMetadata implements ports.LockfileCodec. A lockfile without sentinels
// yields domain.ErrMissingMetadataHeader so callers can distinguish "never
// had metadata" from corruption.
func (c *Codec) ReadMetadata(lockfile []byte, resolveName, delimiter string) (domain.Metadata, error) {
	begin := delimiter + " " + beginSentinel
	end := delimiter + " " + endSentinel
	prefix := delimiter + " "

	lines := strings.Split(string(lockfile), "\n")

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == begin {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, zerr.With(domain.ErrMissingMetadataHeader, "resolve", resolveName)
	}

	var inner []string
	finished := false
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == end {
			finished = true
			break
		}
		inner = append(inner, strings.TrimPrefix(strings.TrimRight(line, "\r"), prefix))
	}
	if !finished {
		return nil, malformed(resolveName, "end sentinel not found")
	}

	payload := []byte(strings.Join(inner, "\n"))

	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, malformed(resolveName, "metadata is not valid JSON")
	}

	switch probe.Version {
	case 1:
		var dto headerV1
		if err := json.Unmarshal(payload, &dto); err != nil {
			return nil, malformed(resolveName, "metadata fields do not match version 1")
		}
		return &domain.MetadataV1{
			ValidForInterpreterConstraints: domain.NewInterpreterConstraints(dto.ValidForInterpreterConstraints...),
			RequirementsDigest:             dto.RequirementsInvalidationDigest,
		}, nil
	case 2:
		var dto headerV2
		if err := json.Unmarshal(payload, &dto); err != nil {
			return nil, malformed(resolveName, "metadata fields do not match version 2")
		}
		return &domain.MetadataV2{
			ValidForInterpreterConstraints: domain.NewInterpreterConstraints(dto.ValidForInterpreterConstraints...),
			GeneratedWithRequirements:      domain.NewRequirementSet(dto.GeneratedWithRequirements...),
		}, nil
	case 3:
		var dto headerV3
		if err := json.Unmarshal(payload, &dto); err != nil {
			return nil, malformed(resolveName, "metadata fields do not match version 3")
		}
		return domain.NewMetadata(
			domain.NewInterpreterConstraints(dto.ValidForInterpreterConstraints...),
			domain.NewRequirementSet(dto.GeneratedWithRequirements...),
			dto.Manylinux,
			domain.NewRequirementSet(dto.RequirementConstraints...),
			domain.NewRequirementSet(dto.OnlyBinary...),
			domain.NewRequirementSet(dto.NoBinary...),
		), nil
	default:
		err := errors.Join(domain.ErrMalformedMetadataHeader, domain.ErrUnknownMetadataVersion)
		return nil, zerr.With(zerr.With(err, "version", probe.Version), "resolve", resolveName)
	}
}

func headerFor(m domain.Metadata) (any, error) {
	switch m := m.(type) {
	case *domain.MetadataV1:
		return headerV1{
			Version:                        1,
			ValidForInterpreterConstraints: m.ValidForInterpreterConstraints.Specifiers(),
			RequirementsInvalidationDigest: m.RequirementsDigest,
		}, nil
	case *domain.MetadataV2:
		return headerV2{
			Version:                        2,
			ValidForInterpreterConstraints: m.ValidForInterpreterConstraints.Specifiers(),
			GeneratedWithRequirements:      m.GeneratedWithRequirements.Sorted(),
		}, nil
	case *domain.MetadataV3:
		return headerV3{
			Version:                        3,
			ValidForInterpreterConstraints: m.ValidForInterpreterConstraints.Specifiers(),
			GeneratedWithRequirements:      m.GeneratedWithRequirements.Sorted(),
			Manylinux:                      m.Manylinux,
			RequirementConstraints:         m.RequirementConstraints.Sorted(),
			OnlyBinary:                     m.OnlyBinary.Sorted(),
			NoBinary:                       m.NoBinary.Sorted(),
		}, nil
	default:
		return nil, zerr.With(domain.ErrUnknownMetadataVersion, "version", m.Version())
	}
}

func malformed(resolveName, detail string) error {
	return zerr.With(zerr.With(domain.ErrMalformedMetadataHeader, "detail", detail), "resolve", resolveName)
}
