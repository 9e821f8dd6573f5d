// Package config provides the resolve configuration loader.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/DLukeNelson/pants/internal/core/domain"
	"github.com/DLukeNelson/pants/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// supportedConfigVersion is the only config schema version this build understands.
const supportedConfigVersion = "1"

var validResolveNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader with the given logger, reading from the OS
// filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// Load reads the configuration file found from cwd and returns the
// configured resolves.
func (l *Loader) Load(cwd string) (*domain.ResolveSet, error) {
	configPath, err := l.DiscoverConfigPath(cwd)
	if err != nil {
		return nil, err
	}

	raw, err := l.FS.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	var cfg LockfileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", configPath)
	}

	if cfg.Version != "" && cfg.Version != supportedConfigVersion {
		l.Logger.Warn(fmt.Sprintf("config version %q is not %q; attempting to load anyway", cfg.Version, supportedConfigVersion))
	}

	if len(cfg.Resolves) == 0 {
		return nil, zerr.With(domain.ErrNoResolvesDefined, "path", configPath)
	}

	set := domain.NewResolveSet(cfg.InterpreterUniverse)
	for name, dto := range cfg.Resolves {
		if !validResolveNameRegex.MatchString(name) {
			return nil, zerr.With(domain.ErrInvalidResolveName, "resolve", name)
		}
		set.Add(buildResolve(name, dto))
	}

	return set, nil
}

// DiscoverConfigPath walks up from cwd to find pants-lock.yaml.
func (l *Loader) DiscoverConfigPath(cwd string) (string, error) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := l.FS.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func buildResolve(name string, dto *ResolveDTO) *domain.ResolveConfig {
	regenerate := dto.RegenerateCommand
	if regenerate == "" {
		regenerate = fmt.Sprintf("./pants generate-lockfiles --resolve=%s", name)
	}

	return &domain.ResolveConfig{
		Name:                   name,
		IsTool:                 dto.Tool,
		InterpreterConstraints: domain.NewInterpreterConstraints(dto.InterpreterConstraints...),
		Requirements:           domain.NewRequirementSet(dto.Requirements...),
		Manylinux:              dto.Manylinux,
		RequirementConstraints: domain.NewRequirementSet(dto.RequirementConstraints...),
		OnlyBinary:             domain.NewRequirementSet(dto.OnlyBinary...),
		NoBinary:               domain.NewRequirementSet(dto.NoBinary...),
		RegenerateCommand:      regenerate,
	}
}
