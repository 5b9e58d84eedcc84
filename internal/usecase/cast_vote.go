package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/domain/models"
)

// CastVoteParams contains parameters for voting on a proposal
type CastVoteParams struct {
	Voter      common.Address
	ProposalID uint64
	Choice     models.VoteChoice
}

// CastVote is the use case for recording a Yay or Nay vote
type CastVote struct {
	config     *config.RuntimeConfig
	store      ProposalStore
	membership MembershipOracle
	clock      Clock
	notifier   *Notifier
}

// NewCastVote creates a new CastVote use case
func NewCastVote(
	cfg *config.RuntimeConfig,
	store ProposalStore,
	membership MembershipOracle,
	clock Clock,
	notifier *Notifier,
) *CastVote {
	return &CastVote{
		config:     cfg,
		store:      store,
		membership: membership,
		clock:      clock,
		notifier:   notifier,
	}
}

// Run validates the vote against the proposal state and records it. The store
// re-checks the deadline, execution and duplicate rules under the proposal lock.
func (uc *CastVote) Run(ctx context.Context, params CastVoteParams) (_ *models.ProposalView, err error) {
	defer func() { uc.notifier.Observe(OpCastVote, err) }()

	if !params.Choice.Valid() {
		return nil, fmt.Errorf("vote %d: %w", uint8(params.Choice), domain.ErrInvalidChoice)
	}

	proposal, err := uc.store.Get(ctx, params.ProposalID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if !now.Before(proposal.Deadline) {
		return nil, fmt.Errorf("proposal %d closed at %d: %w", proposal.ID, proposal.Deadline.Unix(), domain.ErrVotingClosed)
	}
	if proposal.Executed {
		return nil, fmt.Errorf("proposal %d: %w", proposal.ID, domain.ErrAlreadyExecuted)
	}

	if uc.config.Governance.RequireMembershipToVote {
		balance, err := uc.membership.BalanceOf(ctx, params.Voter)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership of %s: %w", params.Voter.Hex(), err)
		}
		if balance == 0 {
			return nil, fmt.Errorf("%s cannot vote: %w", params.Voter.Hex(), domain.ErrUnauthorized)
		}
	}

	if err := uc.store.RecordVote(ctx, proposal.ID, params.Voter, params.Choice, now); err != nil {
		return nil, fmt.Errorf("proposal %d: %w", proposal.ID, err)
	}

	uc.notifier.Publish(ctx, domain.VoteCastEvent{
		ProposalID: proposal.ID,
		Voter:      params.Voter,
		Choice:     params.Choice.String(),
	}, now)

	updated, err := uc.store.Get(ctx, proposal.ID)
	if err != nil {
		return nil, err
	}
	return updated.View(now), nil
}
