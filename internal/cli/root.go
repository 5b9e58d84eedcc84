package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vodkadao/daoctl/internal/app"
	"github.com/vodkadao/daoctl/internal/cli/render"
	"github.com/vodkadao/daoctl/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// skipInit lists commands that run without a project
var skipInit = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// session holds what PersistentPreRunE builds. close is idempotent.
type session struct {
	app     *app.App
	cleanup func()
	cancel  context.CancelFunc
	closed  bool
}

func (s *session) close(ctx context.Context) {
	if s.closed || s.app == nil {
		return
	}
	s.closed = true
	pushMetrics(ctx, s.app)
	if s.cancel != nil {
		s.cancel()
	}
	if s.cleanup != nil {
		s.cleanup()
	}
}

// Execute runs the root command against os.Args
func Execute(ctx context.Context) error {
	s := &session{}
	err := newRootCmd(s).ExecuteContext(ctx)
	s.close(ctx)
	return err
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "daoctl",
		Short: "NFT-gated DAO governance engine",
		Long: `daoctl runs a DAO whose members are holders of a gating NFT collection.

Members propose buying an item from the NFT marketplace, vote Yay or Nay
until the voting deadline, and anyone can then execute the proposal. A
passing proposal buys the item from the treasury; a failing one just closes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipInit[cmd.Name()] {
				return nil
			}
			if _, err := outputFormat(cmd); err != nil {
				return err
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, appCleanup, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			s.app, s.cleanup = appInstance, appCleanup

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				ctx, s.cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close(context.WithoutCancel(cmd.Context()))
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format (same as --output json)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().String("from", "", "Address of the principal issuing the command")
	rootCmd.PersistentFlags().String("at", "", "Evaluate at this time (unix seconds or RFC3339) instead of now")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding proposal and treasury state (default <project>/.daoctl)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "governance",
		Title: "Governance Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "query",
		Title: "Query Commands",
	})

	for _, c := range []*cobra.Command{NewProposeCmd(), NewVoteCmd(), NewExecuteCmd()} {
		c.GroupID = "governance"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewShowCmd(), NewListCmd(), NewCountCmd(), NewTreasuryCmd()} {
		c.GroupID = "query"
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// outputFormat resolves --output, with --json taking precedence
func outputFormat(cmd *cobra.Command) (render.Format, error) {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return render.FormatJSON, nil
	}
	out, _ := cmd.Flags().GetString("output")
	return render.ParseFormat(out)
}

// emit writes v in the structured format when one is selected and reports
// whether it did; text output is left to the caller
func emit(cmd *cobra.Command, v any) (bool, error) {
	format, err := outputFormat(cmd)
	if err != nil {
		return false, err
	}
	if format == render.FormatText {
		return false, nil
	}
	return true, render.Structured(cmd.OutOrStdout(), format, v)
}

func useColor(w io.Writer) bool {
	return !color.NoColor && w != io.Discard
}

// requireCaller returns the --from address or an error naming how to set it
func requireCaller(a *app.App) (common.Address, error) {
	if a.Config.Caller == (common.Address{}) {
		return common.Address{}, fmt.Errorf("no caller address: pass --from or set DAOCTL_FROM")
	}
	return a.Config.Caller, nil
}

func pushMetrics(ctx context.Context, a *app.App) {
	url := a.Config.Metrics.PushGatewayURL
	if url == "" || a.Metrics == nil {
		return
	}
	if err := a.Metrics.Push(ctx, url); err != nil {
		a.Log.Warn("failed to push metrics", "url", url, "error", err)
	}
}
