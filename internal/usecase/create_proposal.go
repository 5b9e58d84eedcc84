package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/domain/models"
)

// CreateProposalParams contains parameters for opening a proposal
type CreateProposalParams struct {
	Proposer common.Address
	ItemID   uint64
}

// CreateProposal is the use case for opening a purchase proposal
type CreateProposal struct {
	config     *config.RuntimeConfig
	store      ProposalStore
	membership MembershipOracle
	clock      Clock
	notifier   *Notifier
	progress   ProgressSink
}

// NewCreateProposal creates a new CreateProposal use case
func NewCreateProposal(
	cfg *config.RuntimeConfig,
	store ProposalStore,
	membership MembershipOracle,
	clock Clock,
	notifier *Notifier,
	progress ProgressSink,
) *CreateProposal {
	return &CreateProposal{
		config:     cfg,
		store:      store,
		membership: membership,
		clock:      clock,
		notifier:   notifier,
		progress:   progress,
	}
}

// Run gates on membership and appends a proposal whose deadline is now plus the voting period
func (uc *CreateProposal) Run(ctx context.Context, params CreateProposalParams) (_ *models.ProposalView, err error) {
	defer func() { uc.notifier.Observe(OpCreateProposal, err) }()

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "membership",
		Message: "Checking gating NFT balance",
		Spinner: true,
	})
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: "completed"})

	balance, err := uc.membership.BalanceOf(ctx, params.Proposer)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership of %s: %w", params.Proposer.Hex(), err)
	}
	if balance == 0 {
		return nil, fmt.Errorf("%s cannot create proposals: %w", params.Proposer.Hex(), domain.ErrUnauthorized)
	}

	period := uc.config.Governance.VotingPeriod
	if period <= 0 {
		period = config.DefaultVotingPeriod
	}
	now := uc.clock.Now()
	deadline := now.Add(period)

	id, err := uc.store.Create(ctx, params.ItemID, params.Proposer, now, deadline)
	if err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	uc.notifier.Publish(ctx, domain.ProposalCreatedEvent{
		ProposalID: id,
		ItemID:     params.ItemID,
		Proposer:   params.Proposer,
		Deadline:   deadline,
	}, now)

	return &models.ProposalView{
		ID:           id,
		ItemID:       params.ItemID,
		Deadline:     deadline,
		DeadlineUnix: deadline.Unix(),
		State:        models.ProposalStateOpen,
	}, nil
}
