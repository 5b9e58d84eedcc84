package usecase

import "context"

// CountProposals is the use case behind numProposals
type CountProposals struct {
	store ProposalStore
}

// NewCountProposals creates a new CountProposals use case
func NewCountProposals(store ProposalStore) *CountProposals {
	return &CountProposals{store: store}
}

// Run returns the number of proposals created so far
func (uc *CountProposals) Run(ctx context.Context) (uint64, error) {
	return uc.store.Count(ctx)
}
