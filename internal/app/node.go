package app

import (
	"context"

	"github.com/DLukeNelson/pants/internal/adapters/config"
	"github.com/DLukeNelson/pants/internal/adapters/lockfile"
	"github.com/DLukeNelson/pants/internal/adapters/logger"
	"github.com/DLukeNelson/pants/internal/adapters/telemetry"
	"github.com/DLukeNelson/pants/internal/core/ports"
	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Components aggregates the resolved application dependencies.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			lockfile.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			codec, err := graft.Dep[ports.LockfileCodec](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			setupOTel()

			return &Components{
				App:    New(loader, codec, log, tracer),
				Logger: log,
			}, nil
		},
	})
}

// setupOTel registers a global TracerProvider so spans started through the
// tracer adapter are recorded.
func setupOTel() {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
}
