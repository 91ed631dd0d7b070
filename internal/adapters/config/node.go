package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the settings Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[domain.Settings]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (domain.Settings, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return domain.Settings{}, err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return domain.Settings{}, zerr.Wrap(err, "failed to resolve working directory")
			}

			return NewLoader(log).Load(cwd)
		},
	})
}
