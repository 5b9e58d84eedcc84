package blockchain

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// NFTBalanceOracle reads membership from the ERC721 balanceOf of the gating collection
type NFTBalanceOracle struct {
	backend Backend
	nft     common.Address
}

// NewNFTBalanceOracle creates a membership oracle over the collection at nft
func NewNFTBalanceOracle(backend Backend, nft common.Address) *NFTBalanceOracle {
	return &NFTBalanceOracle{backend: backend, nft: nft}
}

// BalanceOf returns the number of tokens holder owns, saturating at MaxUint64
func (o *NFTBalanceOracle) BalanceOf(ctx context.Context, holder common.Address) (uint64, error) {
	v, err := call(ctx, o.backend, erc721, o.nft, "balanceOf", holder)
	if err != nil {
		return 0, err
	}
	balance, ok := v.(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected balanceOf result type %T", v)
	}
	if !balance.IsUint64() {
		return math.MaxUint64, nil
	}
	return balance.Uint64(), nil
}

// MarketplacePriceOracle quotes items from the on-chain marketplace
type MarketplacePriceOracle struct {
	backend     Backend
	marketplace common.Address
}

// NewMarketplacePriceOracle creates a price oracle over the marketplace at addr
func NewMarketplacePriceOracle(backend Backend, addr common.Address) *MarketplacePriceOracle {
	return &MarketplacePriceOracle{backend: backend, marketplace: addr}
}

// Price returns the listing price, or ErrItemUnavailable when the item is not for sale
func (o *MarketplacePriceOracle) Price(ctx context.Context, itemID uint64) (*big.Int, error) {
	v, err := call(ctx, o.backend, marketplace, o.marketplace, "available", new(big.Int).SetUint64(itemID))
	if err != nil {
		return nil, err
	}
	available, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("unexpected available result type %T", v)
	}
	if !available {
		return nil, fmt.Errorf("item %d: %w", itemID, domain.ErrItemUnavailable)
	}

	v, err = call(ctx, o.backend, marketplace, o.marketplace, "getPrice")
	if err != nil {
		return nil, err
	}
	price, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected getPrice result type %T", v)
	}
	return price, nil
}

// TreasuryBalanceReader reports the native balance of the DAO contract
type TreasuryBalanceReader struct {
	backend Backend
	dao     common.Address
}

// NewTreasuryBalanceReader creates a reader for the DAO account at dao
func NewTreasuryBalanceReader(backend Backend, dao common.Address) *TreasuryBalanceReader {
	return &TreasuryBalanceReader{backend: backend, dao: dao}
}

// Balance returns the DAO balance in wei at the latest block
func (r *TreasuryBalanceReader) Balance(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()

	balance, err := r.backend.BalanceAt(callCtx, r.dao, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance of %s: %w", r.dao.Hex(), err)
	}
	return balance, nil
}

var (
	_ usecase.MembershipOracle = (*NFTBalanceOracle)(nil)
	_ usecase.PriceOracle      = (*MarketplacePriceOracle)(nil)
)
