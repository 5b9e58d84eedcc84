package config

// DAOFileConfig represents the full dao.toml configuration file
type DAOFileConfig struct {
	Governance GovernanceFileConfig `toml:"governance"`
	Treasury   TreasuryFileConfig   `toml:"treasury"`
	Membership MembershipFileConfig `toml:"membership"`
	Network    *NetworkFileConfig   `toml:"network,omitempty"`
	Events     EventsFileConfig     `toml:"events"`
	Metrics    MetricsFileConfig    `toml:"metrics"`
}

// GovernanceFileConfig represents the [governance] section
type GovernanceFileConfig struct {
	// VotingPeriod is a Go duration string, e.g. "5m"
	VotingPeriod string `toml:"voting_period,omitempty"`
	// MarketPrice is the purchase price in wei as a decimal string
	MarketPrice             string `toml:"market_price,omitempty"`
	RequireMembershipToVote *bool  `toml:"require_membership_to_vote,omitempty"`
}

// TreasuryFileConfig represents the [treasury] section
type TreasuryFileConfig struct {
	// InitialBalance in wei; applied only when no treasury state exists yet
	InitialBalance   string   `toml:"initial_balance,omitempty"`
	UnavailableItems []uint64 `toml:"unavailable_items,omitempty"`
}

// MembershipFileConfig represents the [membership] section.
// Holders maps hex addresses to the number of gating NFTs they hold.
type MembershipFileConfig struct {
	Holders map[string]uint64 `toml:"holders"`
}

// NetworkFileConfig represents the optional [network] section for on-chain reads
type NetworkFileConfig struct {
	RPCURL             string `toml:"rpc_url"`
	ChainID            uint64 `toml:"chain_id,omitempty"`
	NFTAddress         string `toml:"nft_address"`
	MarketplaceAddress string `toml:"marketplace_address,omitempty"`
	DAOAddress         string `toml:"dao_address,omitempty"`
}

// EventsFileConfig represents the [events] section
type EventsFileConfig struct {
	NATSURL string `toml:"nats_url,omitempty"`
	Subject string `toml:"subject,omitempty"`
}

// MetricsFileConfig represents the [metrics] section
type MetricsFileConfig struct {
	PushGatewayURL string `toml:"pushgateway_url,omitempty"`
}
