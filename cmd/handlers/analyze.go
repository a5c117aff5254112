package handlers

import (
	"context"

	"github.com/spf13/cobra"

	"tubelens/internal/comments"
	"tubelens/internal/logger"
	"tubelens/internal/render"
)

// NewAnalyzeCmd creates the analyze command: full metrics plus comment
// analysis for one channel.
func NewAnalyzeCmd() *cobra.Command {
	var (
		strategy string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <channel>",
		Short: "Analyze a channel's performance and audience comments",
		Long: `Analyze fetches the channel's recent items and comments, aggregates
performance metrics, and classifies the comments. The channel argument is
either a channel ID or an @handle.

When the comment branch fails the command still reports metrics, marking
the run as degraded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, err := buildService(ctx, strategy)
			if err != nil {
				return err
			}
			logger.Info("starting channel analysis", "channel", args[0], "strategy", strategy)
			analysis, err := svc.Analyze(ctx, args[0])
			if err != nil {
				return err
			}
			return emit(asJSON, analysis, render.Analysis(analysis))
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", comments.StrategyKeyword, "comment classification strategy (keyword or generative)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as a JSON envelope")
	return cmd
}
