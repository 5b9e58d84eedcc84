package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/models"
)

// ProposalStore owns every proposal record. All read-modify-write sequences on one
// proposal are serialized by the store; different ids do not contend.
type ProposalStore interface {
	Create(ctx context.Context, itemID uint64, proposer common.Address, createdAt, deadline time.Time) (uint64, error)
	Get(ctx context.Context, id uint64) (*models.Proposal, error)
	Count(ctx context.Context) (uint64, error)
	List(ctx context.Context) ([]*models.Proposal, error)
	RecordVote(ctx context.Context, id uint64, voter common.Address, choice models.VoteChoice, now time.Time) error
	MarkExecuted(ctx context.Context, id uint64, at time.Time, purchased bool) error
	// Update runs fn on a working copy while holding the proposal's lock and commits
	// the copy only when fn returns nil and the record invariants still hold.
	Update(ctx context.Context, id uint64, fn func(p *models.Proposal) error) error
}

// MembershipOracle answers how many gating NFTs a principal holds
type MembershipOracle interface {
	BalanceOf(ctx context.Context, holder common.Address) (uint64, error)
}

// Clock is the single time source shared by all operations of one evaluation
type Clock interface {
	Now() time.Time
}

// Treasury is the pooled funds plus the marketplace gateway used on execution
type Treasury interface {
	Purchase(ctx context.Context, itemID uint64, price *big.Int) error
	Balance(ctx context.Context) (*big.Int, error)
	Deposit(ctx context.Context, from common.Address, amount *big.Int) (*big.Int, error)
}

// BalanceReader reports an account balance in wei
type BalanceReader interface {
	Balance(ctx context.Context) (*big.Int, error)
}

// PriceOracle quotes the marketplace price of an item
type PriceOracle interface {
	Price(ctx context.Context, itemID uint64) (*big.Int, error)
}

// EventPublisher delivers governance events to observers
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// GovernanceMetrics records the outcome of every engine operation
type GovernanceMetrics interface {
	ObserveOperation(operation string, err error)
}

// InteractiveSelector prompts the user when a command is missing input
type InteractiveSelector interface {
	SelectProposal(ctx context.Context, proposals []*models.ProposalView, prompt string) (*models.ProposalView, error)
	SelectVoteChoice(ctx context.Context, proposal *models.ProposalView) (models.VoteChoice, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// NopMetrics discards observations
type NopMetrics struct{}

func (NopMetrics) ObserveOperation(string, error) {}

// Operation names reported to GovernanceMetrics
const (
	OpCreateProposal  = "create_proposal"
	OpCastVote        = "vote"
	OpExecuteProposal = "execute_proposal"
	OpFundTreasury    = "fund_treasury"
)
