package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/squares/internal/app"
	"go.trai.ch/squares/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a grid through the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, _ := cmd.Flags().GetString("grid")
			board, _ := cmd.Flags().GetString("board")
			depth, _ := cmd.Flags().GetInt("depth")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			if (grid == "") == (board == "") {
				return zerr.Wrap(errors.Join(domain.ErrValidation, errors.New("exactly one of --grid or --board is required")), "invalid flags")
			}

			return c.app.Solve(cmd.Context(), cmd.OutOrStdout(), app.SolveOptions{
				Grid:       grid,
				BoardFile:  board,
				Depth:      depth,
				OutputMode: outputMode,
			})
		},
	}
	cmd.Flags().StringP("grid", "g", "", "Space-separated grid letters")
	cmd.Flags().StringP("board", "b", "", "File of board cell attributes to read the grid from")
	cmd.Flags().IntP("depth", "d", domain.MinDepth, "Longest word length to search for (4-16)")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, styled, or plain")
	return cmd
}
