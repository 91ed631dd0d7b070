package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/config"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
)

// NodeID is the unique identifier for the solver runner Graft node.
const NodeID graft.ID = "adapter.solver_runner"

func init() {
	graft.Register(graft.Node[ports.SolverRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SolverRunner, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log, settings.SolverCommand), nil
		},
	})
}
