package treasury

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/vodkadao/daoctl/internal/adapters/fs"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

const (
	TreasuryFile = "treasury.json"
	stateVersion = 1
)

// Deposit is one funding entry in the treasury history
type Deposit struct {
	From   common.Address `json:"from"`
	Amount string         `json:"amount"`
}

// Purchase is one item bought from the marketplace
type Purchase struct {
	ItemID uint64 `json:"nftTokenId"`
	Price  string `json:"price"`
}

// ledgerState is the on-disk layout of treasury.json
type ledgerState struct {
	Version   int        `json:"version"`
	Balance   string     `json:"balance"`
	Deposits  []Deposit  `json:"deposits"`
	Purchases []Purchase `json:"purchases"`
}

func (s *ledgerState) balance() (*big.Int, error) {
	b, ok := new(big.Int).SetString(s.Balance, 10)
	if !ok {
		return nil, fmt.Errorf("corrupt treasury balance %q", s.Balance)
	}
	return b, nil
}

func (s *ledgerState) sold(itemID uint64) bool {
	return lo.ContainsBy(s.Purchases, func(p Purchase) bool { return p.ItemID == itemID })
}

// Ledger is the simulated treasury together with the marketplace it buys from.
// State lives in <data dir>/treasury.json; the initial balance seeds a missing file.
type Ledger struct {
	file        *fs.StateFile
	initial     *big.Int
	unavailable []uint64
}

// NewLedger creates the treasury ledger under the configured data directory
func NewLedger(cfg *config.RuntimeConfig) *Ledger {
	return NewLedgerAt(filepath.Join(cfg.DataDir, TreasuryFile), cfg.Treasury)
}

// NewLedgerAt creates a ledger at an explicit path
func NewLedgerAt(path string, cfg config.TreasuryConfig) *Ledger {
	initial := big.NewInt(0)
	if cfg.InitialBalance != nil {
		initial = new(big.Int).Set(cfg.InitialBalance)
	}
	return &Ledger{
		file:        fs.NewStateFile(path),
		initial:     initial,
		unavailable: cfg.UnavailableItems,
	}
}

func (l *Ledger) seed(state *ledgerState) {
	if state.Version == 0 {
		state.Version = stateVersion
		state.Balance = l.initial.String()
	}
}

// Balance returns the funds currently held
func (l *Ledger) Balance(ctx context.Context) (*big.Int, error) {
	var state ledgerState
	if err := l.file.Read(ctx, &state); err != nil {
		return nil, err
	}
	l.seed(&state)
	return state.balance()
}

// Deposit adds amount to the treasury and returns the new balance
func (l *Ledger) Deposit(ctx context.Context, from common.Address, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("deposit of %v: %w", amount, domain.ErrInvalidAmount)
	}

	var state ledgerState
	var balance *big.Int
	err := l.file.Update(ctx, &state, func() error {
		l.seed(&state)
		current, err := state.balance()
		if err != nil {
			return err
		}
		balance = current.Add(current, amount)
		state.Balance = balance.String()
		state.Deposits = append(state.Deposits, Deposit{From: from, Amount: amount.String()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// Purchase buys itemID at price, debiting the treasury. Nothing changes when the
// item is unavailable or the balance does not cover the price.
func (l *Ledger) Purchase(ctx context.Context, itemID uint64, price *big.Int) error {
	if price == nil || price.Sign() < 0 {
		return fmt.Errorf("price %v: %w", price, domain.ErrInvalidAmount)
	}
	if lo.Contains(l.unavailable, itemID) {
		return fmt.Errorf("item %d: %w", itemID, domain.ErrItemUnavailable)
	}

	var state ledgerState
	return l.file.Update(ctx, &state, func() error {
		l.seed(&state)
		if state.sold(itemID) {
			return fmt.Errorf("item %d already sold: %w", itemID, domain.ErrItemUnavailable)
		}
		balance, err := state.balance()
		if err != nil {
			return err
		}
		if balance.Cmp(price) < 0 {
			return fmt.Errorf("balance %s below price %s: %w", balance, price, domain.ErrInsufficientFunds)
		}
		state.Balance = balance.Sub(balance, price).String()
		state.Purchases = append(state.Purchases, Purchase{ItemID: itemID, Price: price.String()})
		return nil
	})
}

// Purchases returns the items bought so far
func (l *Ledger) Purchases(ctx context.Context) ([]Purchase, error) {
	var state ledgerState
	if err := l.file.Read(ctx, &state); err != nil {
		return nil, err
	}
	return state.Purchases, nil
}

var _ usecase.Treasury = (*Ledger)(nil)
