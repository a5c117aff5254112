package handlers

import (
	"context"

	"github.com/spf13/cobra"

	"tubelens/internal/comments"
	"tubelens/internal/logger"
	"tubelens/internal/render"
)

// NewIdeasCmd creates the ideas command: analyze the channel and generate
// content ideas from the results.
func NewIdeasCmd() *cobra.Command {
	var (
		strategy     string
		customPrompt string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "ideas <channel>",
		Short: "Generate content ideas grounded in the channel's data",
		Long: `Ideas runs a full channel analysis and asks the configured model chain
for content ideas grounded in the results. When every model fails the
command falls back to templated ideas marked as degraded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, err := buildService(ctx, strategy)
			if err != nil {
				return err
			}
			logger.Info("generating ideas", "channel", args[0])
			analysis, list, err := svc.GenerateIdeas(ctx, args[0], customPrompt)
			if err != nil {
				return err
			}
			payload := struct {
				Analysis any `json:"analysis"`
				Ideas    any `json:"ideas"`
			}{analysis, list}
			return emit(asJSON, payload, render.Ideas(list))
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", comments.StrategyKeyword, "comment classification strategy (keyword or generative)")
	cmd.Flags().StringVar(&customPrompt, "prompt", "", "extra instruction folded into the idea prompt")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as a JSON envelope")
	return cmd
}
