package proposals

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/models"
	"github.com/vodkadao/daoctl/internal/usecase"
)

// record pairs a proposal with the lock that serializes its read-modify-write sequences
type record struct {
	mu       sync.Mutex
	proposal *models.Proposal
}

// MemoryStore is an append-only arena of proposals indexed by id-1
type MemoryStore struct {
	mu      sync.RWMutex
	records []*record
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreFrom rebuilds a store from a snapshot; ids must be dense from 1
func NewMemoryStoreFrom(snapshot []*models.Proposal) (*MemoryStore, error) {
	s := &MemoryStore{records: make([]*record, 0, len(snapshot))}
	for i, p := range snapshot {
		if p == nil || p.ID != uint64(i+1) {
			return nil, fmt.Errorf("corrupt proposal snapshot: entry %d has unexpected id", i)
		}
		cp := p.Clone()
		if uint64(len(cp.Voters)) != cp.YayVotes+cp.NayVotes {
			return nil, fmt.Errorf("corrupt proposal snapshot: proposal %d tallies do not match voters", cp.ID)
		}
		s.records = append(s.records, &record{proposal: cp})
	}
	return s, nil
}

// Create appends a new proposal and returns its id
func (s *MemoryStore) Create(ctx context.Context, itemID uint64, proposer common.Address, createdAt, deadline time.Time) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uint64(len(s.records)) + 1
	s.records = append(s.records, &record{
		proposal: &models.Proposal{
			ID:        id,
			ItemID:    itemID,
			Proposer:  proposer,
			CreatedAt: createdAt,
			Deadline:  deadline,
			Voters:    make(map[common.Address]models.VoteChoice),
		},
	})
	return id, nil
}

// Get returns a copy of the proposal
func (s *MemoryStore) Get(ctx context.Context, id uint64) (*models.Proposal, error) {
	r, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proposal.Clone(), nil
}

// Count returns the number of proposals created so far
func (s *MemoryStore) Count(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.records)), nil
}

// List returns copies of all proposals in id order
func (s *MemoryStore) List(ctx context.Context) ([]*models.Proposal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// RecordVote adds voter's choice to the tallies
func (s *MemoryStore) RecordVote(ctx context.Context, id uint64, voter common.Address, choice models.VoteChoice, now time.Time) error {
	return s.Update(ctx, id, func(p *models.Proposal) error {
		return p.RecordVote(voter, choice, now)
	})
}

// MarkExecuted sets the terminal executed flag
func (s *MemoryStore) MarkExecuted(ctx context.Context, id uint64, at time.Time, purchased bool) error {
	return s.Update(ctx, id, func(p *models.Proposal) error {
		return p.MarkExecuted(at, purchased)
	})
}

// Update applies fn to a working copy under the proposal lock and commits it on success
func (s *MemoryStore) Update(ctx context.Context, id uint64, fn func(p *models.Proposal) error) error {
	r, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	next := r.proposal.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := models.CheckTransition(r.proposal, next); err != nil {
		return fmt.Errorf("rejected proposal update: %w", err)
	}
	r.proposal = next
	return nil
}

// Snapshot returns copies of every proposal in id order
func (s *MemoryStore) Snapshot() []*models.Proposal {
	s.mu.RLock()
	records := make([]*record, len(s.records))
	copy(records, s.records)
	s.mu.RUnlock()

	out := make([]*models.Proposal, 0, len(records))
	for _, r := range records {
		r.mu.Lock()
		out = append(out, r.proposal.Clone())
		r.mu.Unlock()
	}
	return out
}

func (s *MemoryStore) lookup(ctx context.Context, id uint64) (*record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if id == 0 || id > uint64(len(s.records)) {
		return nil, fmt.Errorf("proposal %d: %w", id, domain.ErrNotFound)
	}
	return s.records[id-1], nil
}

// Ensure MemoryStore implements ProposalStore
var _ usecase.ProposalStore = (*MemoryStore)(nil)
