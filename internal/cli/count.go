package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCountCmd creates the count command
func NewCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of proposals ever created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			n, err := app.CountProposals.Run(cmd.Context())
			if err != nil {
				return err
			}

			if done, err := emit(cmd, map[string]uint64{"numProposals": n}); done || err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
