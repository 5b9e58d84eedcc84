package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/vodkadao/daoctl/internal/domain/models"
)

// ShowTreasuryParams contains parameters for the treasury overview
type ShowTreasuryParams struct {
	// Holder is reported with its gating NFT balance when set
	Holder common.Address
}

// TreasuryOverview summarizes the DAO's funds and governance activity
type TreasuryOverview struct {
	Balance       *big.Int       `json:"balance" yaml:"balance"`
	ChainBalance  *big.Int       `json:"chainBalance,omitempty" yaml:"chainBalance,omitempty"`
	MarketPrice   *big.Int       `json:"marketPrice,omitempty" yaml:"marketPrice,omitempty"`
	Proposals     uint64         `json:"numProposals" yaml:"numProposals"`
	OpenProposals int            `json:"openProposals" yaml:"openProposals"`
	Holder        common.Address `json:"holder,omitempty" yaml:"holder,omitempty"`
	HolderNFTs    uint64         `json:"holderNfts" yaml:"holderNfts"`
}

// ShowTreasury is the use case for the treasury overview
type ShowTreasury struct {
	treasury   Treasury
	chain      BalanceReader
	store      ProposalStore
	membership MembershipOracle
	clock      Clock
}

// NewShowTreasury creates a new ShowTreasury use case; chain may be nil when offline
func NewShowTreasury(treasury Treasury, chain BalanceReader, store ProposalStore, membership MembershipOracle, clock Clock) *ShowTreasury {
	return &ShowTreasury{
		treasury:   treasury,
		chain:      chain,
		store:      store,
		membership: membership,
		clock:      clock,
	}
}

// Run gathers balances and proposal counts
func (uc *ShowTreasury) Run(ctx context.Context, params ShowTreasuryParams) (*TreasuryOverview, error) {
	balance, err := uc.treasury.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read treasury balance: %w", err)
	}
	overview := &TreasuryOverview{Balance: balance, Holder: params.Holder}

	if uc.chain != nil {
		if overview.ChainBalance, err = uc.chain.Balance(ctx); err != nil {
			return nil, err
		}
	}

	proposals, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	now := uc.clock.Now()
	overview.Proposals = uint64(len(proposals))
	overview.OpenProposals = lo.CountBy(proposals, func(p *models.Proposal) bool {
		return p.StateAt(now) == models.ProposalStateOpen
	})

	if params.Holder != (common.Address{}) {
		if overview.HolderNFTs, err = uc.membership.BalanceOf(ctx, params.Holder); err != nil {
			return nil, fmt.Errorf("failed to check membership of %s: %w", params.Holder.Hex(), err)
		}
	}
	return overview, nil
}
