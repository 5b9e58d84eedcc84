package cli

import (
	"github.com/spf13/cobra"
	"github.com/vodkadao/daoctl/internal/cli/render"
	"github.com/vodkadao/daoctl/internal/domain/models"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// NewExecuteCmd creates the execute command
func NewExecuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [proposal-id]",
		Short: "Execute a proposal whose voting period has ended",
		Long: `Finalize a proposal after its deadline. Anyone may execute.

If Yay votes outnumber Nay votes the treasury buys the item at the current
market price. A tie or a Nay majority closes the proposal without buying.
If the purchase fails the proposal is left unexecuted and can be retried.`,
		Example: `  daoctl execute 0
  daoctl execute --at 2026-01-02T03:04:05Z`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			proposal, err := resolveProposal(cmd, app, args, models.ProposalStateClosed, "Select a proposal to execute")
			if err != nil {
				return err
			}

			result, err := app.ExecuteProposal.Run(cmd.Context(), usecase.ExecuteProposalParams{
				Caller:     app.Config.Caller,
				ProposalID: proposal.ID,
			})
			if err != nil {
				return err
			}

			if done, err := emit(cmd, result); done || err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return render.NewProposalsRenderer(out, useColor(out), app.Clock.Now()).RenderExecution(result)
		},
	}
	return cmd
}
