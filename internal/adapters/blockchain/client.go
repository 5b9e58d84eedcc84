package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/vodkadao/daoctl/internal/domain/config"
)

const rpcTimeout = 5 * time.Second

// Backend is the subset of the RPC client the on-chain adapters read from
type Backend interface {
	ethereum.ContractCaller
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Client is a connection to the network that hosts the NFT and marketplace contracts
type Client struct {
	*ethclient.Client
	network *config.Network
}

// Connect dials the configured RPC endpoint and checks the chain id when one is set
func Connect(ctx context.Context, network *config.Network) (*Client, error) {
	if network == nil || network.RPCURL == "" {
		return nil, fmt.Errorf("no rpc url configured")
	}

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	if network.ChainID != 0 {
		callCtx, cancel := context.WithTimeout(ctx, rpcTimeout)
		defer cancel()

		chainID, err := client.ChainID(callCtx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
		if chainID.Uint64() != network.ChainID {
			client.Close()
			return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID.Uint64())
		}
	}

	return &Client{Client: client, network: network}, nil
}

// Network returns the network this client was connected with
func (c *Client) Network() *config.Network {
	return c.network
}

// ProvideClient connects when a network is configured. A nil client means the
// offline adapters should be used.
func ProvideClient(cfg *config.RuntimeConfig) (*Client, func(), error) {
	if cfg.Network == nil {
		return nil, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*rpcTimeout)
	defer cancel()

	client, err := Connect(ctx, cfg.Network)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

var _ Backend = (*Client)(nil)
