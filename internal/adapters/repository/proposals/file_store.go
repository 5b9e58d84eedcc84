package proposals

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/vodkadao/daoctl/internal/adapters/fs"
	"github.com/vodkadao/daoctl/internal/domain/config"
	"github.com/vodkadao/daoctl/internal/domain/models"
	"github.com/vodkadao/daoctl/internal/usecase"
)

const (
	ProposalsFile = "proposals.json"
	stateVersion  = 1
)

// fileState is the on-disk layout of proposals.json
type fileState struct {
	Version   int                `json:"version"`
	Proposals []*models.Proposal `json:"proposals"`
}

// FileStore persists proposals in <data dir>/proposals.json. Every operation reloads
// the document under the file lock, applies the change through a MemoryStore and
// writes it back, so separate daoctl invocations share one append-only history.
type FileStore struct {
	file *fs.StateFile
}

// NewFileStore creates a file-backed store under the configured data directory
func NewFileStore(cfg *config.RuntimeConfig) *FileStore {
	return NewFileStoreAt(filepath.Join(cfg.DataDir, ProposalsFile))
}

// NewFileStoreAt creates a file-backed store at an explicit path
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{file: fs.NewStateFile(path)}
}

func (s *FileStore) read(ctx context.Context, fn func(m *MemoryStore) error) error {
	var state fileState
	if err := s.file.Read(ctx, &state); err != nil {
		return err
	}
	m, err := NewMemoryStoreFrom(state.Proposals)
	if err != nil {
		return err
	}
	return fn(m)
}

func (s *FileStore) write(ctx context.Context, fn func(m *MemoryStore) error) error {
	var state fileState
	return s.file.Update(ctx, &state, func() error {
		m, err := NewMemoryStoreFrom(state.Proposals)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
		state.Version = stateVersion
		state.Proposals = m.Snapshot()
		return nil
	})
}

// Create appends a new proposal and returns its id
func (s *FileStore) Create(ctx context.Context, itemID uint64, proposer common.Address, createdAt, deadline time.Time) (uint64, error) {
	var id uint64
	err := s.write(ctx, func(m *MemoryStore) error {
		var err error
		id, err = m.Create(ctx, itemID, proposer, createdAt, deadline)
		return err
	})
	return id, err
}

// Get returns a copy of the proposal
func (s *FileStore) Get(ctx context.Context, id uint64) (*models.Proposal, error) {
	var p *models.Proposal
	err := s.read(ctx, func(m *MemoryStore) error {
		var err error
		p, err = m.Get(ctx, id)
		return err
	})
	return p, err
}

// Count returns the number of proposals created so far
func (s *FileStore) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := s.read(ctx, func(m *MemoryStore) error {
		var err error
		n, err = m.Count(ctx)
		return err
	})
	return n, err
}

// List returns copies of all proposals in id order
func (s *FileStore) List(ctx context.Context) ([]*models.Proposal, error) {
	var out []*models.Proposal
	err := s.read(ctx, func(m *MemoryStore) error {
		var err error
		out, err = m.List(ctx)
		return err
	})
	return out, err
}

// RecordVote adds voter's choice to the tallies
func (s *FileStore) RecordVote(ctx context.Context, id uint64, voter common.Address, choice models.VoteChoice, now time.Time) error {
	return s.write(ctx, func(m *MemoryStore) error {
		return m.RecordVote(ctx, id, voter, choice, now)
	})
}

// MarkExecuted sets the terminal executed flag
func (s *FileStore) MarkExecuted(ctx context.Context, id uint64, at time.Time, purchased bool) error {
	return s.write(ctx, func(m *MemoryStore) error {
		return m.MarkExecuted(ctx, id, at, purchased)
	})
}

// Update applies fn under the file lock; the document is rewritten only on success
func (s *FileStore) Update(ctx context.Context, id uint64, fn func(p *models.Proposal) error) error {
	return s.write(ctx, func(m *MemoryStore) error {
		return m.Update(ctx, id, fn)
	})
}

// Ensure FileStore implements ProposalStore
var _ usecase.ProposalStore = (*FileStore)(nil)
