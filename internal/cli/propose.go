package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vodkadao/daoctl/internal/cli/render"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// NewProposeCmd creates the propose command
func NewProposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose <token-id>",
		Short: "Propose buying an NFT from the marketplace",
		Long: `Create a proposal to buy the marketplace item with the given token id.

The proposer must hold at least one gating NFT. Voting stays open for the
configured voting period, starting now (or at --at).`,
		Example: `  daoctl propose 42 --from 0x1111111111111111111111111111111111111111`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid token id %q: %w", args[0], err)
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			proposer, err := requireCaller(app)
			if err != nil {
				return err
			}

			view, err := app.CreateProposal.Run(cmd.Context(), usecase.CreateProposalParams{
				Proposer: proposer,
				ItemID:   itemID,
			})
			if err != nil {
				return err
			}

			if done, err := emit(cmd, view); done || err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.FormatSuccess(fmt.Sprintf("Created proposal #%d", view.ID)))
			return render.NewProposalsRenderer(out, useColor(out), app.Clock.Now()).Render(view)
		},
	}
	return cmd
}
