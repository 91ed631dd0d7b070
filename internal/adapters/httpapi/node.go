package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/squares/internal/adapters/config"
	"go.trai.ch/squares/internal/core/domain"
)

// ClientNodeID is the unique identifier for the solve client Graft node.
const ClientNodeID graft.ID = "adapter.http_client"

// clientGrace extends the client timeout past the server's solver timeout.
const clientGrace = 5 * time.Second

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        ClientNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Client, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			hc := &http.Client{Timeout: settings.SolverTimeout + clientGrace}
			return NewClient(settings.ServerURL, hc), nil
		},
	})
}
