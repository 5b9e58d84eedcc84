package treasury

import (
	"context"
	"math/big"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/config"
)

var funder = common.HexToAddress("0x3333333333333333333333333333333333333333")

func newLedger(t *testing.T, initial int64, unavailable ...uint64) *Ledger {
	t.Helper()
	return NewLedgerAt(filepath.Join(t.TempDir(), TreasuryFile), config.TreasuryConfig{
		InitialBalance:   big.NewInt(initial),
		UnavailableItems: unavailable,
	})
}

func TestLedger_InitialBalance(t *testing.T) {
	l := newLedger(t, 1000)
	b, err := l.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), b.Int64())
}

func TestLedger_Purchase(t *testing.T) {
	ctx := context.Background()

	t.Run("debits the price", func(t *testing.T) {
		l := newLedger(t, 1000)
		require.NoError(t, l.Purchase(ctx, 7, big.NewInt(400)))

		b, err := l.Balance(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(600), b.Int64())

		bought, err := l.Purchases(ctx)
		require.NoError(t, err)
		require.Len(t, bought, 1)
		assert.Equal(t, uint64(7), bought[0].ItemID)
	})

	t.Run("insufficient funds leave balance untouched", func(t *testing.T) {
		l := newLedger(t, 100)
		err := l.Purchase(ctx, 7, big.NewInt(400))
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		b, err := l.Balance(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(100), b.Int64())
	})

	t.Run("unavailable items are rejected", func(t *testing.T) {
		l := newLedger(t, 1000, 9)
		assert.ErrorIs(t, l.Purchase(ctx, 9, big.NewInt(1)), domain.ErrItemUnavailable)
	})

	t.Run("an item sells once", func(t *testing.T) {
		l := newLedger(t, 1000)
		require.NoError(t, l.Purchase(ctx, 7, big.NewInt(1)))
		assert.ErrorIs(t, l.Purchase(ctx, 7, big.NewInt(1)), domain.ErrItemUnavailable)
	})

	t.Run("negative price", func(t *testing.T) {
		l := newLedger(t, 1000)
		assert.ErrorIs(t, l.Purchase(ctx, 7, big.NewInt(-1)), domain.ErrInvalidAmount)
	})
}

func TestLedger_Deposit(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 10)

	b, err := l.Deposit(ctx, funder, big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, int64(15), b.Int64())

	_, err = l.Deposit(ctx, funder, big.NewInt(0))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = l.Deposit(ctx, funder, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestLedger_ConcurrentPurchasesNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, 300)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(item uint64) {
			defer wg.Done()
			if err := l.Purchase(ctx, item, big.NewInt(100)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
			}
		}(uint64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	b, err := l.Balance(ctx)
	require.NoError(t, err)
	assert.Zero(t, b.Sign())
}

func TestFixedPrice(t *testing.T) {
	p := NewFixedPrice(&config.RuntimeConfig{})
	got, err := p.Price(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, config.DefaultMarketPrice().Cmp(got))

	got.SetInt64(1)
	again, _ := p.Price(context.Background(), 1)
	assert.Equal(t, 0, config.DefaultMarketPrice().Cmp(again))
}
