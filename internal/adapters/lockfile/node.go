package lockfile

import (
	"context"

	"github.com/DLukeNelson/pants/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the lockfile codec Graft node.
const NodeID graft.ID = "adapter.lockfile_codec"

func init() {
	graft.Register(graft.Node[ports.LockfileCodec]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockfileCodec, error) {
			return NewCodec(), nil
		},
	})
}
