package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vodkadao/daoctl/internal/cli/render"
	"github.com/vodkadao/daoctl/internal/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// NewTreasuryCmd creates the treasury command and its subcommands
func NewTreasuryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treasury",
		Short: "Show the DAO treasury",
		Long: `Show the treasury balance, the marketplace price and proposal counts.

When --from is set the caller's NFT balance is shown too. When
[network].dao_address is configured the on-chain balance of the DAO
contract is read as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			overview, err := app.ShowTreasury.Run(cmd.Context(), usecase.ShowTreasuryParams{
				Holder: app.Config.Caller,
			})
			if err != nil {
				return err
			}

			if done, err := emit(cmd, overview); done || err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return render.NewTreasuryRenderer(out, useColor(out)).Render(overview)
		},
	}

	cmd.AddCommand(newTreasuryFundCmd())
	return cmd
}

func newTreasuryFundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fund <amount>",
		Short: "Deposit funds into the treasury",
		Long: `Deposit funds into the treasury. The amount is in wei unless it carries a
unit suffix: gwei, ether or eth.`,
		Example: `  daoctl treasury fund 1ether --from 0x1111111111111111111111111111111111111111
  daoctl treasury fund 250000000000000000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := config.ParseWei(args[0])
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			from, err := requireCaller(app)
			if err != nil {
				return err
			}

			balance, err := app.FundTreasury.Run(cmd.Context(), usecase.FundTreasuryParams{
				From:   from,
				Amount: amount,
			})
			if err != nil {
				return err
			}

			if done, err := emit(cmd, map[string]string{"deposited": amount.String(), "balance": balance.String()}); done || err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Deposited %s, treasury now holds %s",
				render.FormatWei(amount), render.FormatWei(balance))))
			return nil
		},
	}
}
