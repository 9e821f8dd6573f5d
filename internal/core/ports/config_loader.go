package ports

import "github.com/DLukeNelson/pants/internal/core/domain"

// ConfigLoader defines the interface for loading the resolve configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration starting from the given working directory
	// and returns the configured resolves.
	Load(cwd string) (*domain.ResolveSet, error)

	// DiscoverConfigPath walks up from cwd to find the configuration file.
	DiscoverConfigPath(cwd string) (string, error)
}
