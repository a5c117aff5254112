package handlers

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tubelens/internal/comments"
	"tubelens/internal/core"
	"tubelens/internal/render"
)

// NewCommentsCmd creates the comments command: classify audience comments
// without the metrics report.
func NewCommentsCmd() *cobra.Command {
	var (
		strategy string
		itemID   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "comments [channel]",
		Short: "Classify a channel's or a single item's audience comments",
		Long: `Comments gathers top-level comments across the channel's recent items
and classifies them into popular, constructive, and improvement lists.
With --item, only that item's comments are analyzed and the channel
argument is not needed.

The generative strategy samples the most-liked comments for a model to
classify and falls back to the keyword strategy when every model fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if itemID == "" && len(args) == 0 {
				return errors.New("either a channel argument or --item is required")
			}
			ctx := context.Background()
			svc, err := buildService(ctx, strategy)
			if err != nil {
				return err
			}
			var result *core.ClassificationResult
			if itemID != "" {
				result, err = svc.AnalyzeItemComments(ctx, itemID)
			} else {
				result, err = svc.AnalyzeComments(ctx, args[0])
			}
			if err != nil {
				return err
			}
			return emit(asJSON, result, render.Classification(result))
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", comments.StrategyKeyword, "comment classification strategy (keyword or generative)")
	cmd.Flags().StringVar(&itemID, "item", "", "analyze a single item's comments instead of the whole channel")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as a JSON envelope")
	return cmd
}
