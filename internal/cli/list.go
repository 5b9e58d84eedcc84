package cli

import (
	"github.com/spf13/cobra"
	"github.com/vodkadao/daoctl/internal/cli/render"
	"github.com/vodkadao/daoctl/internal/domain/models"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		state  string
		itemID uint64
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List proposals",
		Long:    `List proposals in creation order, optionally filtered by state or item.`,
		Example: `  # Proposals still accepting votes
  daoctl list --state open

  # Every proposal for token 42
  daoctl list --item 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			views, err := app.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{
				State:  models.ProposalState(state),
				ItemID: itemID,
			})
			if err != nil {
				return err
			}

			if done, err := emit(cmd, views); done || err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return render.NewProposalsRenderer(out, useColor(out), app.Clock.Now()).RenderList(views)
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Filter by state (open, closed, executed)")
	cmd.Flags().Uint64Var(&itemID, "item", 0, "Filter by NFT token id")

	return cmd
}
