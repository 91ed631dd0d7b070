package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the solve server",
		Long: "Run the HTTP solve server. POST /solve runs the configured solver " +
			"under the configured timeout; GET /health reports liveness.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := c.app.Listen(cmd.Context())
			if err != nil {
				return err
			}
			return c.app.Serve(cmd.Context(), l)
		},
	}
}
