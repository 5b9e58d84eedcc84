package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/vodkadao/daoctl/internal/domain/config"
)

// DAOFile is the project configuration file name
const DAOFile = "dao.toml"

// loadEnvFiles loads .env files from the project root without overriding the environment
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadDAOFile parses dao.toml from the project root. A missing file yields an empty config.
func LoadDAOFile(projectRoot string) (*config.DAOFileConfig, error) {
	path := filepath.Join(projectRoot, DAOFile)
	cfg := &config.DAOFileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DAOFile, err)
	}
	return cfg, nil
}

// applyDAOFile resolves the file sections into cfg; ${VAR} references are expanded
func applyDAOFile(cfg *config.RuntimeConfig, file *config.DAOFileConfig) error {
	gov := file.Governance
	if gov.VotingPeriod != "" {
		d, err := time.ParseDuration(os.ExpandEnv(gov.VotingPeriod))
		if err != nil {
			return fmt.Errorf("governance.voting_period: %w", err)
		}
		cfg.Governance.VotingPeriod = d
	}
	if gov.MarketPrice != "" {
		price, err := ParseWei(os.ExpandEnv(gov.MarketPrice))
		if err != nil {
			return fmt.Errorf("governance.market_price: %w", err)
		}
		cfg.Governance.MarketPrice = price
	}
	if gov.RequireMembershipToVote != nil {
		cfg.Governance.RequireMembershipToVote = *gov.RequireMembershipToVote
	}

	if file.Treasury.InitialBalance != "" {
		balance, err := ParseWei(os.ExpandEnv(file.Treasury.InitialBalance))
		if err != nil {
			return fmt.Errorf("treasury.initial_balance: %w", err)
		}
		cfg.Treasury.InitialBalance = balance
	}
	cfg.Treasury.UnavailableItems = file.Treasury.UnavailableItems

	cfg.Membership.Holders = make(map[common.Address]uint64, len(file.Membership.Holders))
	for holder, balance := range file.Membership.Holders {
		addr, err := ParseAddress(holder)
		if err != nil {
			return fmt.Errorf("membership.holders: %w", err)
		}
		cfg.Membership.Holders[addr] += balance
	}

	if file.Network != nil {
		network, err := resolveNetwork(file.Network)
		if err != nil {
			return err
		}
		cfg.Network = network
	}

	cfg.Events.NATSURL = os.ExpandEnv(file.Events.NATSURL)
	if file.Events.Subject != "" {
		cfg.Events.Subject = file.Events.Subject
	}
	cfg.Metrics.PushGatewayURL = os.ExpandEnv(file.Metrics.PushGatewayURL)
	return nil
}

func resolveNetwork(n *config.NetworkFileConfig) (*config.Network, error) {
	network := &config.Network{
		ChainID: n.ChainID,
		RPCURL:  os.ExpandEnv(n.RPCURL),
	}
	if network.RPCURL == "" {
		return nil, fmt.Errorf("network.rpc_url is required when [network] is set")
	}

	fields := []struct {
		name  string
		value string
		dst   *common.Address
	}{
		{"nft_address", n.NFTAddress, &network.NFTAddress},
		{"marketplace_address", n.MarketplaceAddress, &network.MarketplaceAddress},
		{"dao_address", n.DAOAddress, &network.DAOAddress},
	}
	for _, f := range fields {
		value := strings.TrimSpace(os.ExpandEnv(f.value))
		if value == "" {
			continue
		}
		addr, err := ParseAddress(value)
		if err != nil {
			return nil, fmt.Errorf("network.%s: %w", f.name, err)
		}
		*f.dst = addr
	}
	if network.NFTAddress == (common.Address{}) {
		return nil, fmt.Errorf("network.nft_address is required when [network] is set")
	}
	return network, nil
}
