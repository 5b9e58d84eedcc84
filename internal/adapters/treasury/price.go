package treasury

import (
	"context"
	"math/big"

	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// FixedPrice quotes every item at the configured market price
type FixedPrice struct {
	price *big.Int
}

// NewFixedPrice creates a price oracle from the governance settings
func NewFixedPrice(cfg *config.RuntimeConfig) *FixedPrice {
	price := cfg.Governance.MarketPrice
	if price == nil {
		price = config.DefaultMarketPrice()
	}
	return &FixedPrice{price: new(big.Int).Set(price)}
}

// Price returns a copy of the fixed price
func (f *FixedPrice) Price(ctx context.Context, _ uint64) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return new(big.Int).Set(f.price), nil
}

var _ usecase.PriceOracle = (*FixedPrice)(nil)
