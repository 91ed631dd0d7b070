package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/config"
	"go.trai.ch/squares/internal/adapters/logger"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the state store Graft node.
const NodeID graft.ID = "adapter.store"

func init() {
	graft.Register(graft.Node[ports.StateStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.StateStore, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Open(ctx, settings, log)
		},
	})
}

// Open builds the backend selected by settings.
func Open(ctx context.Context, settings domain.Settings, log ports.Logger) (ports.StateStore, error) {
	switch settings.StoreBackend {
	case domain.StoreMemory:
		return NewMemoryStore(), nil
	case domain.StoreFile:
		return NewFileStore(settings.StorePath).WithLogger(log), nil
	case domain.StoreSQLite:
		return OpenSQLite(ctx, settings.StorePath)
	case domain.StoreRedis:
		return OpenRedis(ctx, settings.RedisURL)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStoreBackend, "unsupported store backend"), "backend", settings.StoreBackend)
	}
}
