package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/squares/internal/adapters/store"
	"go.trai.ch/squares/internal/core/ports"
)

// NodeID is the unique identifier for the result cache Graft node.
const NodeID graft.ID = "engine.cache"

func init() {
	graft.Register(graft.Node[ports.ResultCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{store.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ResultCache, error) {
			s, err := graft.Dep[ports.StateStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(s, log), nil
		},
	})
}
