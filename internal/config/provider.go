package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vodkadao/daoctl/internal/domain/config"
)

// DataDirName is the directory under the project root holding daoctl state
const DataDirName = ".daoctl"

// Provider creates RuntimeConfig for Wire dependency injection.
// Precedence: flags, then DAOCTL_* environment, then dao.toml, then defaults.
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        v.GetString("data_dir"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		Governance: config.GovernanceConfig{
			VotingPeriod:            config.DefaultVotingPeriod,
			MarketPrice:             config.DefaultMarketPrice(),
			RequireMembershipToVote: true,
		},
		Events: config.EventsConfig{Subject: config.DefaultEventsSubject},
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(projectRoot, DataDirName)
	}

	daoFile, err := LoadDAOFile(projectRoot)
	if err != nil {
		return nil, err
	}
	if err := applyDAOFile(cfg, daoFile); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", DAOFile, err)
	}

	if err := applyOverrides(cfg, v); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides lets flags and environment win over dao.toml
func applyOverrides(cfg *config.RuntimeConfig, v *viper.Viper) error {
	if from := v.GetString("from"); from != "" {
		addr, err := ParseAddress(from)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		cfg.Caller = addr
	}
	if at := v.GetString("at"); at != "" {
		t, err := ParseTime(at)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		cfg.At = t
	}
	if v.IsSet("voting_period") {
		d := v.GetDuration("voting_period")
		if d <= 0 {
			return fmt.Errorf("voting period must be positive, got %q", v.GetString("voting_period"))
		}
		cfg.Governance.VotingPeriod = d
	}
	if url := v.GetString("nats_url"); url != "" {
		cfg.Events.NATSURL = url
	}
	if url := v.GetString("rpc_url"); url != "" && cfg.Network != nil {
		cfg.Network.RPCURL = url
	}
	if url := v.GetString("pushgateway_url"); url != "" {
		cfg.Metrics.PushGatewayURL = url
	}
	return nil
}

// FindProjectRoot walks up from the current directory to the nearest dao.toml,
// falling back to the current directory when none exists
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, DAOFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	loadEnvFiles(projectRoot)

	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("DAOCTL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Env-only keys still need a binding to be visible to IsSet/Get
	for _, key := range []string{"from", "at", "voting_period", "nats_url", "rpc_url", "pushgateway_url", "data_dir"} {
		_ = v.BindEnv(key)
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		if err != nil {
			panic(err)
		}
	})

	return v
}
