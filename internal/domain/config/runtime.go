package config

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Caller is the principal issuing the command (--from)
	Caller common.Address
	// At pins the clock for this invocation; zero means wall clock
	At time.Time

	Governance GovernanceConfig
	Treasury   TreasuryConfig
	Membership MembershipConfig
	Events     EventsConfig
	Metrics    MetricsConfig

	// Network is nil when no on-chain collaborators are configured
	Network *Network
}

// GovernanceConfig holds the engine constants
type GovernanceConfig struct {
	VotingPeriod            time.Duration
	MarketPrice             *big.Int
	RequireMembershipToVote bool
}

// TreasuryConfig holds the simulated treasury settings
type TreasuryConfig struct {
	InitialBalance   *big.Int
	UnavailableItems []uint64
}

// MembershipConfig holds the static holder ledger
type MembershipConfig struct {
	Holders map[common.Address]uint64
}

// EventsConfig holds the event sink settings
type EventsConfig struct {
	NATSURL string
	Subject string
}

// MetricsConfig holds the optional pushgateway target
type MetricsConfig struct {
	PushGatewayURL string
}

// Network represents network configuration
type Network struct {
	ChainID            uint64         `json:"chainId"`
	RPCURL             string         `json:"rpcUrl"`
	NFTAddress         common.Address `json:"nftAddress"`
	MarketplaceAddress common.Address `json:"marketplaceAddress,omitempty"`
	DAOAddress         common.Address `json:"daoAddress,omitempty"`
}

// Defaults for the governance constants
const (
	DefaultVotingPeriod  = 5 * time.Minute
	DefaultEventsSubject = "dao.events"
)

// DefaultMarketPrice is 0.1 ether, the fixed listing price of the NFT marketplace
func DefaultMarketPrice() *big.Int {
	return big.NewInt(100_000_000_000_000_000)
}
