package blockchain

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vodkadao/daoctl/internal/domain"
)

var (
	nftAddr    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	marketAddr = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	daoAddr    = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	holder     = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

// fakeBackend answers view calls by method selector
type fakeBackend struct {
	contract abi.ABI
	results  map[string][]any
	calls    []string
	err      error
	balance  *big.Int
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	method, err := f.contract.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, method.Name)
	return method.Outputs.Pack(f.results[method.Name]...)
}

func (f *fakeBackend) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	if f.err != nil {
		return nil, f.err
	}
	if account != daoAddr {
		return big.NewInt(0), nil
	}
	return f.balance, nil
}

func TestNFTBalanceOracle(t *testing.T) {
	ctx := context.Background()

	t.Run("returns balance", func(t *testing.T) {
		backend := &fakeBackend{contract: erc721, results: map[string][]any{"balanceOf": {big.NewInt(3)}}}
		n, err := NewNFTBalanceOracle(backend, nftAddr).BalanceOf(ctx, holder)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), n)
	})

	t.Run("saturates huge balances", func(t *testing.T) {
		huge := new(big.Int).Lsh(big.NewInt(1), 100)
		backend := &fakeBackend{contract: erc721, results: map[string][]any{"balanceOf": {huge}}}
		n, err := NewNFTBalanceOracle(backend, nftAddr).BalanceOf(ctx, holder)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), n)
	})

	t.Run("propagates rpc errors", func(t *testing.T) {
		backend := &fakeBackend{contract: erc721, err: errors.New("connection refused")}
		_, err := NewNFTBalanceOracle(backend, nftAddr).BalanceOf(ctx, holder)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestMarketplacePriceOracle(t *testing.T) {
	ctx := context.Background()
	price := big.NewInt(100_000_000_000_000_000)

	t.Run("available item is quoted", func(t *testing.T) {
		backend := &fakeBackend{contract: marketplace, results: map[string][]any{
			"available": {true},
			"getPrice":  {price},
		}}
		got, err := NewMarketplacePriceOracle(backend, marketAddr).Price(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, 0, price.Cmp(got))
		assert.Equal(t, []string{"available", "getPrice"}, backend.calls)
	})

	t.Run("unavailable item", func(t *testing.T) {
		backend := &fakeBackend{contract: marketplace, results: map[string][]any{
			"available": {false},
		}}
		_, err := NewMarketplacePriceOracle(backend, marketAddr).Price(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrItemUnavailable)
		assert.Equal(t, []string{"available"}, backend.calls)
	})
}

func TestTreasuryBalanceReader(t *testing.T) {
	backend := &fakeBackend{balance: big.NewInt(5)}
	got, err := NewTreasuryBalanceReader(backend, daoAddr).Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Int64())
}
