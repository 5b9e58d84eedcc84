package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vodkadao/daoctl/internal/cli/render"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <proposal-id>",
		Short: "Show a proposal",
		Long: `Show the item, deadline, tallies and state of a proposal.

With --json the fields match the on-chain proposals(id) getter: nftTokenId,
deadline (unix seconds), yayVotes, nayVotes and executed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			view, err := app.ShowProposal.Run(cmd.Context(), id)
			if err != nil {
				return err
			}

			if done, err := emit(cmd, view); done || err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return render.NewProposalsRenderer(out, useColor(out), app.Clock.Now()).Render(view)
		},
	}
	return cmd
}

func parseProposalID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal id %q", s)
	}
	return id, nil
}
