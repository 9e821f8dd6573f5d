package domain

import (
	"sort"

	"go.trai.ch/zerr"
)

// ConfigFileName is the name of the resolve configuration file.
const ConfigFileName = "pants-lock.yaml"

// ResolveConfig is the live configuration of one named resolve: everything
// the lockfile's metadata gets compared against at validation time.
type ResolveConfig struct {
	Name                   string
	IsTool                 bool
	InterpreterConstraints InterpreterConstraints
	Requirements           RequirementSet
	Manylinux              *string
	RequirementConstraints RequirementSet
	OnlyBinary             RequirementSet
	NoBinary               RequirementSet
	RegenerateCommand      string
}

// ValidationRequest builds the validation input for this resolve, including
// the recomputed invalidation digest needed to check v1 metadata.
func (c *ResolveConfig) ValidationRequest(universe []string) ValidationRequest {
	return ValidationRequest{
		IsTool:                     c.IsTool,
		ExpectedInvalidationDigest: CalculateInvalidationDigest(c.Requirements.Sorted()),
		UserInterpreterConstraints: c.InterpreterConstraints,
		InterpreterUniverse:        universe,
		UserRequirements:           c.Requirements,
		Manylinux:                  c.Manylinux,
		RequirementConstraints:     c.RequirementConstraints,
		OnlyBinary:                 c.OnlyBinary,
		NoBinary:                   c.NoBinary,
	}
}

// ResolveSet is the loaded project configuration: all named resolves plus the
// interpreter universe they are validated against.
type ResolveSet struct {
	universe []string
	resolves map[string]*ResolveConfig
}

// NewResolveSet creates an empty ResolveSet. An empty universe falls back to
// DefaultInterpreterUniverse.
func NewResolveSet(universe []string) *ResolveSet {
	if len(universe) == 0 {
		universe = DefaultInterpreterUniverse
	}
	return &ResolveSet{
		universe: universe,
		resolves: make(map[string]*ResolveConfig),
	}
}

// InterpreterUniverse returns the universe this set validates against.
func (s *ResolveSet) InterpreterUniverse() []string {
	return s.universe
}

// Add registers a resolve configuration.
func (s *ResolveSet) Add(cfg *ResolveConfig) {
	s.resolves[cfg.Name] = cfg
}

// Len returns the number of configured resolves.
func (s *ResolveSet) Len() int {
	return len(s.resolves)
}

// Names returns the configured resolve names in sorted order.
func (s *ResolveSet) Names() []string {
	names := make([]string, 0, len(s.resolves))
	for name := range s.resolves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a resolve by name. An empty name selects the sole resolve
// when exactly one is configured.
func (s *ResolveSet) Resolve(name string) (*ResolveConfig, error) {
	if name == "" {
		if len(s.resolves) == 1 {
			for _, cfg := range s.resolves {
				return cfg, nil
			}
		}
		return nil, zerr.With(ErrResolveNotFound, "configured", len(s.resolves))
	}
	cfg, ok := s.resolves[name]
	if !ok {
		return nil, zerr.With(ErrResolveNotFound, "resolve", name)
	}
	return cfg, nil
}
