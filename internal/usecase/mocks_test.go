package usecase_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/vodkadao/daoctl/internal/adapters/clock"
	"github.com/vodkadao/daoctl/internal/adapters/repository/proposals"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/usecase"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	carol = common.HexToAddress("0x3333333333333333333333333333333333333333")
	eve   = common.HexToAddress("0x4444444444444444444444444444444444444444")
)

// MockMembershipOracle is a mock implementation of MembershipOracle
type MockMembershipOracle struct {
	mock.Mock
}

func (m *MockMembershipOracle) BalanceOf(ctx context.Context, holder common.Address) (uint64, error) {
	args := m.Called(ctx, holder)
	return args.Get(0).(uint64), args.Error(1)
}

// MockTreasury is a mock implementation of Treasury
type MockTreasury struct {
	mock.Mock
}

func (m *MockTreasury) Purchase(ctx context.Context, itemID uint64, price *big.Int) error {
	args := m.Called(ctx, itemID, price)
	return args.Error(0)
}

func (m *MockTreasury) Balance(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTreasury) Deposit(ctx context.Context, from common.Address, amount *big.Int) (*big.Int, error) {
	args := m.Called(ctx, from, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// MockPriceOracle is a mock implementation of PriceOracle
type MockPriceOracle struct {
	mock.Mock
}

func (m *MockPriceOracle) Price(ctx context.Context, itemID uint64) (*big.Int, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// RecordingPublisher keeps every published event
type RecordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *RecordingPublisher) Types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// RecordingMetrics counts observations by operation
type RecordingMetrics struct {
	mu       sync.Mutex
	failures map[string]int
	ok       map[string]int
}

func (m *RecordingMetrics) ObserveOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ok == nil {
		m.ok = map[string]int{}
		m.failures = map[string]int{}
	}
	if err != nil {
		m.failures[operation]++
		return
	}
	m.ok[operation]++
}

// MockProgressSink records progress stages
type MockProgressSink struct {
	mu     sync.Mutex
	stages []string
	errors []string
}

func (m *MockProgressSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stages = append(m.stages, event.Stage)
}

func (m *MockProgressSink) Info(string) {}

func (m *MockProgressSink) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

// engine wires every governance use case over a memory store and a manual clock
type engine struct {
	cfg        *config.RuntimeConfig
	store      *proposals.MemoryStore
	clock      *clock.Manual
	membership *MockMembershipOracle
	treasury   *MockTreasury
	prices     *MockPriceOracle
	publisher  *RecordingPublisher
	metrics    *RecordingMetrics
	progress   *MockProgressSink
	logs       *bytes.Buffer

	create  *usecase.CreateProposal
	vote    *usecase.CastVote
	execute *usecase.ExecuteProposal
	show    *usecase.ShowProposal
	count   *usecase.CountProposals
	list    *usecase.ListProposals
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	e := &engine{
		cfg: &config.RuntimeConfig{
			Governance: config.GovernanceConfig{
				VotingPeriod:            300 * time.Second,
				MarketPrice:             big.NewInt(100),
				RequireMembershipToVote: true,
			},
		},
		store:      proposals.NewMemoryStore(),
		clock:      clock.NewManual(time.Unix(0, 0)),
		membership: &MockMembershipOracle{},
		treasury:   &MockTreasury{},
		prices:     &MockPriceOracle{},
		publisher:  &RecordingPublisher{},
		metrics:    &RecordingMetrics{},
		progress:   &MockProgressSink{},
		logs:       &bytes.Buffer{},
	}
	notifier := usecase.NewNotifier(e.publisher, e.metrics, slog.New(slog.NewTextHandler(e.logs, nil)))

	e.create = usecase.NewCreateProposal(e.cfg, e.store, e.membership, e.clock, notifier, e.progress)
	e.vote = usecase.NewCastVote(e.cfg, e.store, e.membership, e.clock, notifier)
	e.execute = usecase.NewExecuteProposal(e.store, e.treasury, e.prices, e.clock, notifier, e.progress)
	e.show = usecase.NewShowProposal(e.store, e.clock)
	e.count = usecase.NewCountProposals(e.store)
	e.list = usecase.NewListProposals(e.store, e.clock)

	t.Cleanup(func() {
		e.membership.AssertExpectations(t)
		e.treasury.AssertExpectations(t)
		e.prices.AssertExpectations(t)
	})
	return e
}

// members gives every address one gating NFT
func (e *engine) members(addrs ...common.Address) {
	for _, a := range addrs {
		e.membership.On("BalanceOf", mock.Anything, a).Return(uint64(1), nil).Maybe()
	}
}

func (e *engine) at(seconds int64) {
	e.clock.Set(time.Unix(seconds, 0))
}
