package usecase

import (
	"context"

	"github.com/vodkadao/daoctl/internal/domain/models"
)

// ShowProposal is the use case for reading one proposal
type ShowProposal struct {
	store ProposalStore
	clock Clock
}

// NewShowProposal creates a new ShowProposal use case
func NewShowProposal(store ProposalStore, clock Clock) *ShowProposal {
	return &ShowProposal{store: store, clock: clock}
}

// Run returns the public projection of proposal id
func (uc *ShowProposal) Run(ctx context.Context, id uint64) (*models.ProposalView, error) {
	p, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.View(uc.clock.Now()), nil
}
