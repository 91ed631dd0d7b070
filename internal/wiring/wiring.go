// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/squares/internal/adapters/broadcast"
	_ "go.trai.ch/squares/internal/adapters/config"
	_ "go.trai.ch/squares/internal/adapters/httpapi"
	_ "go.trai.ch/squares/internal/adapters/logger"
	_ "go.trai.ch/squares/internal/adapters/shell"
	_ "go.trai.ch/squares/internal/adapters/store"
	_ "go.trai.ch/squares/internal/adapters/telemetry"
	_ "go.trai.ch/squares/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/squares/internal/app"
	_ "go.trai.ch/squares/internal/engine/cache"
	_ "go.trai.ch/squares/internal/engine/dispatcher"
	_ "go.trai.ch/squares/internal/engine/hub"
	_ "go.trai.ch/squares/internal/engine/retry"
)
