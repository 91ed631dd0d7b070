package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/broadcast" //nolint:depguard // Wired in app layer
	"go.trai.ch/squares/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/squares/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/squares/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/squares/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/squares/internal/core/ports"
	"go.trai.ch/squares/internal/engine/dispatcher"
	"go.trai.ch/squares/internal/engine/hub"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what main needs to run the CLI.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings domain.Settings
}

type jsonSetter interface {
	SetJSON(enable bool)
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			store.NodeID,
			broadcast.NodeID,
			hub.NodeID,
			dispatcher.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
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
	h, err := graft.Dep[*hub.Hub](ctx)
	if err != nil {
		return nil, err
	}
	d, err := graft.Dep[*dispatcher.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	return New(settings, log, s, bc, h, d, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	if js, ok := log.(jsonSetter); ok {
		js.SetJSON(settings.LogJSON)
	}

	return &Components{
		App:      a,
		Logger:   log,
		Settings: settings,
	}, nil
}
