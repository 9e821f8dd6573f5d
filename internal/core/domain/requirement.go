package domain

import (
	"sort"
	"strings"
)

// Requirement is a single dependency specifier, e.g. "ansicolors==0.1.0".
// It is treated as an opaque token: equality is exact string equality after
// whitespace normalization. Interpreting the version range inside a
// requirement is the resolver's job, not ours.
type Requirement string

// NewRequirement normalizes a raw specifier string into a Requirement.
func NewRequirement(raw string) Requirement {
	return Requirement(strings.TrimSpace(raw))
}

// RequirementSet is an unordered collection of requirements.
// A nil RequirementSet behaves like an empty one.
type RequirementSet map[Requirement]struct{}

// NewRequirementSet builds a RequirementSet from raw specifier strings.
// Duplicates collapse.
func NewRequirementSet(raw ...string) RequirementSet {
	set := make(RequirementSet, len(raw))
	for _, r := range raw {
		set[NewRequirement(r)] = struct{}{}
	}
	return set
}

// Contains reports whether r is a member of the set.
func (s RequirementSet) Contains(r Requirement) bool {
	_, ok := s[r]
	return ok
}

// Equal reports whether both sets contain exactly the same requirements.
func (s RequirementSet) Equal(other RequirementSet) bool {
	if len(s) != len(other) {
		return false
	}
	return s.SubsetOf(other)
}

// SubsetOf reports whether every requirement in s is also in other.
func (s RequirementSet) SubsetOf(other RequirementSet) bool {
	for r := range s {
		if !other.Contains(r) {
			return false
		}
	}
	return true
}

// Sorted returns the requirements as a sorted string slice.
// The result is never nil, so an empty set serializes as [] rather than null.
func (s RequirementSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}
