package dispatcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/config"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/squares/internal/adapters/shell"
	"go.trai.ch/squares/internal/adapters/telemetry"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/squares/internal/engine/cache"
)

// NodeID is the unique identifier for the solve dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			cache.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runDispatcherNode,
	})
}

func runDispatcherNode(ctx context.Context) (*Dispatcher, error) {
	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.SolverRunner](ctx)
	if err != nil {
		return nil, err
	}
	rc, err := graft.Dep[ports.ResultCache](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(runner, rc, tracer, log, settings.SolverTimeout), nil
}
