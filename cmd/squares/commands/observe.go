package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/squares/internal/app"
	"go.trai.ch/squares/internal/core/domain"
)

func (c *CLI) newObserveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "observe",
		Short: "Track attempts from a signal stream on stdin",
		Long: `Run one observing context fed by lines on stdin:

  input <text>            the composed word changed
  submit [@token]         the word was submitted
  success [@token]        the submission was accepted
  failure [@token]        the submission was rejected
  notice <text> [@token]  an on-page message; negative phrases count as failure
  found <words>           record words as found
  invalid <words>         record words as invalid
  solve [depth]           solve the board and show the results`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			board, _ := cmd.Flags().GetString("board")
			found, _ := cmd.Flags().GetStringSlice("found")
			invalid, _ := cmd.Flags().GetStringSlice("invalid")
			depth, _ := cmd.Flags().GetInt("depth")
			recency, _ := cmd.Flags().GetBool("recency")
			outputMode, _ := cmd.Flags().GetString("output-mode")

			return c.app.Observe(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), app.ObserveOptions{
				ID:         id,
				BoardFile:  board,
				Found:      found,
				Invalid:    invalid,
				Depth:      depth,
				Recency:    recency,
				OutputMode: outputMode,
			})
		},
	}
	cmd.Flags().String("id", "", "Context identifier (random by default)")
	cmd.Flags().StringP("board", "b", "", "File of board cell attributes displayed by this context")
	cmd.Flags().StringSlice("found", nil, "Words already shown as found")
	cmd.Flags().StringSlice("invalid", nil, "Words already shown as invalid")
	cmd.Flags().IntP("depth", "d", domain.MinDepth, "Default depth for solve lines")
	cmd.Flags().Bool("recency", false, "Attribute outcomes to the current input instead of submission tokens")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, styled, or plain")
	return cmd
}
