package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain"
)

// FundTreasuryParams contains parameters for a deposit
type FundTreasuryParams struct {
	From   common.Address
	Amount *big.Int
}

// FundTreasury is the use case for depositing into the treasury
type FundTreasury struct {
	treasury Treasury
	clock    Clock
	notifier *Notifier
}

// NewFundTreasury creates a new FundTreasury use case
func NewFundTreasury(treasury Treasury, clock Clock, notifier *Notifier) *FundTreasury {
	return &FundTreasury{treasury: treasury, clock: clock, notifier: notifier}
}

// Run deposits params.Amount and returns the new balance
func (uc *FundTreasury) Run(ctx context.Context, params FundTreasuryParams) (_ *big.Int, err error) {
	defer func() { uc.notifier.Observe(OpFundTreasury, err) }()

	if params.Amount == nil || params.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("deposit must be positive: %w", domain.ErrInvalidAmount)
	}

	balance, err := uc.treasury.Deposit(ctx, params.From, params.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to fund treasury: %w", err)
	}

	uc.notifier.Publish(ctx, domain.TreasuryFundedEvent{
		From:    params.From,
		Amount:  new(big.Int).Set(params.Amount),
		Balance: new(big.Int).Set(balance),
	}, uc.clock.Now())
	return balance, nil
}
