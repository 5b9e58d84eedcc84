package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/models"
)

// ExecuteProposalParams contains parameters for executing a proposal
type ExecuteProposalParams struct {
	Caller     common.Address
	ProposalID uint64
}

// ExecuteProposalResult describes the terminal state reached by an execution
type ExecuteProposalResult struct {
	Proposal  *models.ProposalView `json:"proposal" yaml:"proposal"`
	Purchased bool                 `json:"purchased" yaml:"purchased"`
	ItemID    uint64               `json:"nftTokenId" yaml:"nftTokenId"`
	Price     *big.Int             `json:"price,omitempty" yaml:"price,omitempty"`
}

// ExecuteProposal is the use case for finalizing a closed proposal. Any principal may execute.
type ExecuteProposal struct {
	store    ProposalStore
	treasury Treasury
	prices   PriceOracle
	clock    Clock
	notifier *Notifier
	progress ProgressSink
}

// NewExecuteProposal creates a new ExecuteProposal use case
func NewExecuteProposal(
	store ProposalStore,
	treasury Treasury,
	prices PriceOracle,
	clock Clock,
	notifier *Notifier,
	progress ProgressSink,
) *ExecuteProposal {
	return &ExecuteProposal{
		store:    store,
		treasury: treasury,
		prices:   prices,
		clock:    clock,
		notifier: notifier,
		progress: progress,
	}
}

// Run checks the deadline and execution flag, buys the item when Yay strictly
// outnumbers Nay and marks the proposal executed. The checks, the purchase and the
// flag update all happen under the proposal lock, so the purchase is attempted at
// most once per successful execution and a failed purchase leaves the proposal Closed.
func (uc *ExecuteProposal) Run(ctx context.Context, params ExecuteProposalParams) (_ *ExecuteProposalResult, err error) {
	defer func() { uc.notifier.Observe(OpExecuteProposal, err) }()
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: "completed"})

	now := uc.clock.Now()
	result := &ExecuteProposalResult{}

	err = uc.store.Update(ctx, params.ProposalID, func(p *models.Proposal) error {
		if now.Before(p.Deadline) {
			return fmt.Errorf("proposal %d open until %d: %w", p.ID, p.Deadline.Unix(), domain.ErrVotingStillOpen)
		}
		if p.Executed {
			return fmt.Errorf("proposal %d: %w", p.ID, domain.ErrAlreadyExecuted)
		}

		result.ItemID = p.ItemID
		if p.Passed() {
			if err := uc.purchase(ctx, p, result); err != nil {
				return err
			}
		}

		if err := p.MarkExecuted(now, result.Purchased); err != nil {
			return fmt.Errorf("proposal %d: %w", p.ID, err)
		}
		result.Proposal = p.View(now)
		return nil
	})

	var failed *domain.ExecutionFailedError
	if errors.As(err, &failed) {
		uc.progress.Error(failed.Error())
		uc.notifier.Publish(ctx, domain.ProposalExecutionFailedEvent{
			ProposalID: params.ProposalID,
			Executor:   params.Caller,
			Reason:     failed.Err.Error(),
		}, now)
	}
	if err != nil {
		return nil, err
	}

	uc.notifier.Publish(ctx, domain.ProposalExecutedEvent{
		ProposalID: params.ProposalID,
		Executor:   params.Caller,
		Purchased:  result.Purchased,
		ItemID:     result.ItemID,
		Price:      result.Price,
	}, now)
	return result, nil
}

func (uc *ExecuteProposal) purchase(ctx context.Context, p *models.Proposal, result *ExecuteProposalResult) error {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "quoting",
		Message: fmt.Sprintf("Quoting item %d", p.ItemID),
		Spinner: true,
	})
	price, err := uc.prices.Price(ctx, p.ItemID)
	if err != nil {
		return &domain.ExecutionFailedError{ProposalID: p.ID, ItemID: p.ItemID, Err: err}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "purchasing",
		Message: fmt.Sprintf("Buying item %d for %s wei", p.ItemID, price),
		Spinner: true,
	})
	if err := uc.treasury.Purchase(ctx, p.ItemID, price); err != nil {
		return &domain.ExecutionFailedError{ProposalID: p.ID, ItemID: p.ItemID, Price: price, Err: err}
	}

	result.Purchased = true
	result.Price = price
	return nil
}
