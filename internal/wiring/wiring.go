// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/DLukeNelson/pants/internal/adapters/config"
	_ "github.com/DLukeNelson/pants/internal/adapters/lockfile"
	_ "github.com/DLukeNelson/pants/internal/adapters/logger"
	_ "github.com/DLukeNelson/pants/internal/adapters/telemetry"
	// Register app nodes.
	_ "github.com/DLukeNelson/pants/internal/app"
)
