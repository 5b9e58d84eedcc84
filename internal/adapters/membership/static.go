package membership

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// StaticLedger answers membership from a fixed holder table
type StaticLedger struct {
	mu      sync.RWMutex
	holders map[common.Address]uint64
}

// NewStaticLedger copies holders into a new ledger
func NewStaticLedger(holders map[common.Address]uint64) *StaticLedger {
	l := &StaticLedger{holders: make(map[common.Address]uint64, len(holders))}
	for addr, n := range holders {
		l.holders[addr] = n
	}
	return l
}

// NewStaticLedgerFromConfig builds the ledger from the [membership] table
func NewStaticLedgerFromConfig(cfg *config.RuntimeConfig) *StaticLedger {
	return NewStaticLedger(cfg.Membership.Holders)
}

// BalanceOf returns the number of gating tokens held; unknown principals hold none
func (l *StaticLedger) BalanceOf(ctx context.Context, holder common.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.holders[holder], nil
}

// Set changes the balance of holder
func (l *StaticLedger) Set(holder common.Address, balance uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if balance == 0 {
		delete(l.holders, holder)
		return
	}
	l.holders[holder] = balance
}

var _ usecase.MembershipOracle = (*StaticLedger)(nil)
