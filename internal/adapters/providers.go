package adapters

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/wire"
	"github.com/vodkadao/daoctl/internal/adapters/blockchain"
	"github.com/vodkadao/daoctl/internal/adapters/clock"
	"github.com/vodkadao/daoctl/internal/adapters/events"
	"github.com/vodkadao/daoctl/internal/adapters/interactive"
	"github.com/vodkadao/daoctl/internal/adapters/membership"
	"github.com/vodkadao/daoctl/internal/adapters/metrics"
	"github.com/vodkadao/daoctl/internal/adapters/progress"
	"github.com/vodkadao/daoctl/internal/adapters/repository/proposals"
	"github.com/vodkadao/daoctl/internal/adapters/treasury"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// ProvideMembershipOracle reads the NFT contract when a network is configured
// and the [membership] table otherwise
func ProvideMembershipOracle(cfg *config.RuntimeConfig, client *blockchain.Client) usecase.MembershipOracle {
	if client != nil {
		return blockchain.NewNFTBalanceOracle(client, cfg.Network.NFTAddress)
	}
	return membership.NewStaticLedgerFromConfig(cfg)
}

// ProvidePriceOracle quotes from the marketplace contract when one is configured
func ProvidePriceOracle(cfg *config.RuntimeConfig, client *blockchain.Client) usecase.PriceOracle {
	if client != nil && cfg.Network.MarketplaceAddress != (common.Address{}) {
		return blockchain.NewMarketplacePriceOracle(client, cfg.Network.MarketplaceAddress)
	}
	return treasury.NewFixedPrice(cfg)
}

// ProvideChainBalance returns nil unless the DAO contract address is configured
func ProvideChainBalance(cfg *config.RuntimeConfig, client *blockchain.Client) usecase.BalanceReader {
	if client != nil && cfg.Network.DAOAddress != (common.Address{}) {
		return blockchain.NewTreasuryBalanceReader(client, cfg.Network.DAOAddress)
	}
	return nil
}

// StoreSet provides the file-backed proposal store and treasury
var StoreSet = wire.NewSet(
	proposals.NewFileStore,
	wire.Bind(new(usecase.ProposalStore), new(*proposals.FileStore)),

	treasury.NewLedger,
	wire.Bind(new(usecase.Treasury), new(*treasury.Ledger)),
)

// BlockchainSet provides the optional on-chain collaborators
var BlockchainSet = wire.NewSet(
	blockchain.ProvideClient,
	ProvideMembershipOracle,
	ProvidePriceOracle,
	ProvideChainBalance,
)

// ObservabilitySet provides events, metrics and the clock
var ObservabilitySet = wire.NewSet(
	events.ProvidePublisher,

	metrics.NewGovernance,
	wire.Bind(new(usecase.GovernanceMetrics), new(*metrics.Governance)),

	clock.Provide,
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),

	progress.ProvideSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	StoreSet,
	BlockchainSet,
	ObservabilitySet,
	InteractiveSet,
)
