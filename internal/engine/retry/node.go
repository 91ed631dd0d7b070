package retry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/config"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
)

// NodeID is the unique identifier for the retry coordinator Graft node.
const NodeID graft.ID = "engine.retry"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Coordinator, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.RetryAttempts, settings.RetryDelay,
				WithRetryable(IsNetwork),
				WithLogger(log),
			), nil
		},
	})
}
