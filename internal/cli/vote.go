package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vodkadao/daoctl/internal/app"
	"github.com/vodkadao/daoctl/internal/cli/render"
	"github.com/vodkadao/daoctl/internal/domain/models"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// NewVoteCmd creates the vote command
func NewVoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote [proposal-id] [yay|nay]",
		Short: "Vote on an open proposal",
		Long: `Cast a Yay or Nay vote on an open proposal. Each member votes once.

The choice also accepts the numeric encoding used on-chain: 0 for Yay and
1 for Nay. When the proposal or the choice is omitted you are prompted for
them, unless --non-interactive is set.`,
		Example: `  daoctl vote 0 yay --from 0x1111111111111111111111111111111111111111
  daoctl vote 0 1
  daoctl vote`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			voter, err := requireCaller(app)
			if err != nil {
				return err
			}

			var choice models.VoteChoice
			if len(args) == 2 {
				if choice, err = models.ParseVoteChoice(args[1]); err != nil {
					return err
				}
			}

			proposal, err := resolveProposal(cmd, app, args, models.ProposalStateOpen, "Select a proposal to vote on")
			if err != nil {
				return err
			}
			if len(args) < 2 {
				if choice, err = app.Selector.SelectVoteChoice(cmd.Context(), proposal); err != nil {
					return err
				}
			}

			view, err := app.CastVote.Run(cmd.Context(), usecase.CastVoteParams{
				Voter:      voter,
				ProposalID: proposal.ID,
				Choice:     choice,
			})
			if err != nil {
				return err
			}

			if done, err := emit(cmd, view); done || err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return render.NewProposalsRenderer(out, useColor(out), app.Clock.Now()).RenderVote(choice, view)
		},
	}
	return cmd
}

// resolveProposal returns the proposal named by args[0], or prompts among the
// proposals in state when no id was given
func resolveProposal(cmd *cobra.Command, a *app.App, args []string, state models.ProposalState, prompt string) (*models.ProposalView, error) {
	if len(args) > 0 {
		id, err := parseProposalID(args[0])
		if err != nil {
			return nil, err
		}
		return a.ShowProposal.Run(cmd.Context(), id)
	}

	candidates, err := a.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{State: state})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no %s proposals", state)
	}
	return a.Selector.SelectProposal(cmd.Context(), candidates, prompt)
}
