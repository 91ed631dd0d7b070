package hub

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/broadcast"
	"go.trai.ch/squares/internal/adapters/httpapi"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/squares/internal/adapters/store"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/squares/internal/engine/cache"
	"go.trai.ch/squares/internal/engine/retry"
)

// NodeID is the unique identifier for the hub Graft node.
const NodeID graft.ID = "engine.hub"

func init() {
	graft.Register(graft.Node[*Hub]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			httpapi.ClientNodeID,
			retry.NodeID,
			cache.NodeID,
			store.NodeID,
			broadcast.NodeID,
			logger.NodeID,
		},
		Run: runHubNode,
	})
}

func runHubNode(ctx context.Context) (*Hub, error) {
	client, err := graft.Dep[*httpapi.Client](ctx)
	if err != nil {
		return nil, err
	}
	rc, err := graft.Dep[*retry.Coordinator](ctx)
	if err != nil {
		return nil, err
	}
	results, err := graft.Dep[ports.ResultCache](ctx)
	if err != nil {
		return nil, err
	}
	s, err := graft.Dep[ports.StateStore](ctx)
	if err != nil {
		return nil, err
	}
	bc, err := graft.Dep[*broadcast.Broadcaster](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(client, rc, results, s, bc, log), nil
}
