package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/vodkadao/daoctl/internal/domain/models"
)

// ListProposalsParams contains filter parameters for listing proposals
type ListProposalsParams struct {
	// State filters by derived lifecycle state; empty lists everything
	State models.ProposalState
	// ItemID filters by gated item when non-zero
	ItemID uint64
}

// ListProposals is the use case for listing proposals in id order
type ListProposals struct {
	store ProposalStore
	clock Clock
}

// NewListProposals creates a new ListProposals use case
func NewListProposals(store ProposalStore, clock Clock) *ListProposals {
	return &ListProposals{store: store, clock: clock}
}

// Run returns the views that match params
func (uc *ListProposals) Run(ctx context.Context, params ListProposalsParams) ([]*models.ProposalView, error) {
	switch params.State {
	case "", models.ProposalStateOpen, models.ProposalStateClosed, models.ProposalStateExecuted:
	default:
		return nil, fmt.Errorf("unknown proposal state %q", params.State)
	}

	proposals, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}

	now := uc.clock.Now()
	views := lo.Map(proposals, func(p *models.Proposal, _ int) *models.ProposalView {
		return p.View(now)
	})
	return lo.Filter(views, func(v *models.ProposalView, _ int) bool {
		if params.State != "" && v.State != params.State {
			return false
		}
		return params.ItemID == 0 || v.ItemID == params.ItemID
	}), nil
}
