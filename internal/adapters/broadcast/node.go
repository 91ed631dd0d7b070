package broadcast

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/squares/internal/core/ports"
)

// NodeID is the unique identifier for the broadcaster Graft node.
const NodeID graft.ID = "adapter.broadcast"

func init() {
	graft.Register(graft.Node[*Broadcaster]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Broadcaster, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
