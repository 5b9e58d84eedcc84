package proposals

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vodkadao/daoctl/internal/domain"
	"github.com/vodkadao/daoctl/internal/domain/models"
	"github.com/vodkadao/daoctl/internal/usecase"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	t0    = time.Unix(0, 0)
)

// storeFactories runs the shared contract tests against every ProposalStore implementation
func storeFactories() map[string]func(t *testing.T) usecase.ProposalStore {
	return map[string]func(t *testing.T) usecase.ProposalStore{
		"memory": func(t *testing.T) usecase.ProposalStore { return NewMemoryStore() },
		"file": func(t *testing.T) usecase.ProposalStore {
			return NewFileStoreAt(t.TempDir() + "/proposals.json")
		},
	}
}

func TestProposalStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Run("ids are dense and increasing", func(t *testing.T) {
				store := newStore(t)

				n, err := store.Count(ctx)
				require.NoError(t, err)
				assert.Zero(t, n)

				for want := uint64(1); want <= 5; want++ {
					id, err := store.Create(ctx, 100+want, alice, t0, t0.Add(5*time.Minute))
					require.NoError(t, err)
					assert.Equal(t, want, id)
				}

				n, err = store.Count(ctx)
				require.NoError(t, err)
				assert.Equal(t, uint64(5), n)

				all, err := store.List(ctx)
				require.NoError(t, err)
				require.Len(t, all, 5)
				assert.Equal(t, uint64(103), all[2].ItemID)
			})

			t.Run("get returns fresh proposal", func(t *testing.T) {
				store := newStore(t)
				id, err := store.Create(ctx, 7, alice, t0, t0.Add(300*time.Second))
				require.NoError(t, err)

				p, err := store.Get(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, uint64(7), p.ItemID)
				assert.Equal(t, alice, p.Proposer)
				assert.Equal(t, int64(300), p.Deadline.Unix())
				assert.Zero(t, p.YayVotes)
				assert.Zero(t, p.NayVotes)
				assert.False(t, p.Executed)
			})

			t.Run("unknown ids are not found", func(t *testing.T) {
				store := newStore(t)
				_, err := store.Get(ctx, 0)
				assert.ErrorIs(t, err, domain.ErrNotFound)
				_, err = store.Get(ctx, 1)
				assert.ErrorIs(t, err, domain.ErrNotFound)
				assert.ErrorIs(t, store.RecordVote(ctx, 9, alice, models.VoteYay, t0), domain.ErrNotFound)
				assert.ErrorIs(t, store.MarkExecuted(ctx, 9, t0, false), domain.ErrNotFound)
			})

			t.Run("record vote once per principal", func(t *testing.T) {
				store := newStore(t)
				id, err := store.Create(ctx, 7, alice, t0, t0.Add(300*time.Second))
				require.NoError(t, err)

				require.NoError(t, store.RecordVote(ctx, id, alice, models.VoteYay, t0.Add(10*time.Second)))
				require.NoError(t, store.RecordVote(ctx, id, bob, models.VoteNay, t0.Add(20*time.Second)))
				err = store.RecordVote(ctx, id, alice, models.VoteNay, t0.Add(30*time.Second))
				assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

				p, err := store.Get(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, uint64(1), p.YayVotes)
				assert.Equal(t, uint64(1), p.NayVotes)
			})

			t.Run("mark executed once", func(t *testing.T) {
				store := newStore(t)
				id, err := store.Create(ctx, 7, alice, t0, t0.Add(300*time.Second))
				require.NoError(t, err)

				require.NoError(t, store.MarkExecuted(ctx, id, t0.Add(301*time.Second), true))
				assert.ErrorIs(t, store.MarkExecuted(ctx, id, t0.Add(302*time.Second), false), domain.ErrAlreadyExecuted)

				p, err := store.Get(ctx, id)
				require.NoError(t, err)
				assert.True(t, p.Executed)
				assert.True(t, p.Purchased)
				assert.ErrorIs(t, store.RecordVote(ctx, id, bob, models.VoteYay, t0), domain.ErrAlreadyExecuted)
			})

			t.Run("failed update leaves proposal untouched", func(t *testing.T) {
				store := newStore(t)
				id, err := store.Create(ctx, 7, alice, t0, t0.Add(300*time.Second))
				require.NoError(t, err)

				boom := errors.New("purchase failed")
				err = store.Update(ctx, id, func(p *models.Proposal) error {
					_ = p.MarkExecuted(t0, true)
					return boom
				})
				assert.ErrorIs(t, err, boom)

				p, err := store.Get(ctx, id)
				require.NoError(t, err)
				assert.False(t, p.Executed)
			})

			t.Run("update cannot break invariants", func(t *testing.T) {
				store := newStore(t)
				id, err := store.Create(ctx, 7, alice, t0, t0.Add(300*time.Second))
				require.NoError(t, err)

				err = store.Update(ctx, id, func(p *models.Proposal) error {
					p.Deadline = p.Deadline.Add(time.Hour)
					return nil
				})
				assert.Error(t, err)

				p, err := store.Get(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, int64(300), p.Deadline.Unix())
			})

			t.Run("returned proposals are copies", func(t *testing.T) {
				store := newStore(t)
				id, err := store.Create(ctx, 7, alice, t0, t0.Add(300*time.Second))
				require.NoError(t, err)

				p, err := store.Get(ctx, id)
				require.NoError(t, err)
				p.YayVotes = 99
				p.Voters[bob] = models.VoteYay

				again, err := store.Get(ctx, id)
				require.NoError(t, err)
				assert.Zero(t, again.YayVotes)
				assert.False(t, again.HasVoted(bob))
			})
		})
	}
}

func TestProposalStore_ConcurrentVotes(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			id, err := store.Create(ctx, 7, alice, t0, t0.Add(300*time.Second))
			require.NoError(t, err)

			const attempts = 16
			var ok, dup atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := store.RecordVote(ctx, id, alice, models.VoteYay, t0.Add(time.Second))
					switch {
					case err == nil:
						ok.Add(1)
					case errors.Is(err, domain.ErrAlreadyVoted):
						dup.Add(1)
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, int32(1), ok.Load())
			assert.Equal(t, int32(attempts-1), dup.Load())

			p, err := store.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), p.YayVotes)
		})
	}
}

func TestProposalStore_ConcurrentDistinctVoters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id, err := store.Create(ctx, 7, alice, t0, t0.Add(300*time.Second))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			voter := common.HexToAddress(fmt.Sprintf("0x%040x", i+1))
			choice := models.VoteYay
			if i%2 == 1 {
				choice = models.VoteNay
			}
			assert.NoError(t, store.RecordVote(ctx, id, voter, choice, t0.Add(time.Second)))
		}(i)
	}
	wg.Wait()

	p, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), p.YayVotes)
	assert.Equal(t, uint64(25), p.NayVotes)
	assert.Len(t, p.Voters, 50)
}

func TestProposalStore_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var mu sync.Mutex
	seen := make(map[uint64]bool)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Create(ctx, 1, alice, t0, t0.Add(time.Minute))
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[id], "id %d assigned twice", id)
			seen[id] = true
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 100)
	for id := uint64(1); id <= 100; id++ {
		assert.True(t, seen[id])
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Create(ctx, 1, alice, t0, t0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewMemoryStoreFrom_RejectsGaps(t *testing.T) {
	_, err := NewMemoryStoreFrom([]*models.Proposal{{ID: 1}, {ID: 3}})
	assert.Error(t, err)

	_, err = NewMemoryStoreFrom([]*models.Proposal{{ID: 1, YayVotes: 2}})
	assert.Error(t, err)

	s, err := NewMemoryStoreFrom([]*models.Proposal{{ID: 1}, {ID: 2}})
	require.NoError(t, err)
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}
