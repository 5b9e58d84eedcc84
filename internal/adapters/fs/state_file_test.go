package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	Count int `json:"count"`
}

func newTestStateFile(t *testing.T) *StateFile {
	t.Helper()
	return NewStateFile(filepath.Join(t.TempDir(), "state", "counter.json"))
}

func TestStateFile_ReadMissing(t *testing.T) {
	f := newTestStateFile(t)

	state := counterState{Count: 3}
	require.NoError(t, f.Read(context.Background(), &state))
	assert.Equal(t, 3, state.Count)

	_, err := os.Stat(f.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestStateFile_UpdatePersists(t *testing.T) {
	f := newTestStateFile(t)
	ctx := context.Background()

	var state counterState
	require.NoError(t, f.Update(ctx, &state, func() error {
		state.Count++
		return nil
	}))

	var reloaded counterState
	require.NoError(t, f.Read(ctx, &reloaded))
	assert.Equal(t, 1, reloaded.Count)
}

func TestStateFile_UpdateErrorDiscardsChanges(t *testing.T) {
	f := newTestStateFile(t)
	ctx := context.Background()
	boom := errors.New("boom")

	var state counterState
	err := f.Update(ctx, &state, func() error {
		state.Count = 42
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var reloaded counterState
	require.NoError(t, f.Read(ctx, &reloaded))
	assert.Equal(t, 0, reloaded.Count)
}

func TestStateFile_ConcurrentUpdates(t *testing.T) {
	f := newTestStateFile(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var state counterState
			assert.NoError(t, f.Update(ctx, &state, func() error {
				state.Count++
				return nil
			}))
		}()
	}
	wg.Wait()

	var final counterState
	require.NoError(t, f.Read(ctx, &final))
	assert.Equal(t, 20, final.Count)
}

func TestStateFile_CorruptDocument(t *testing.T) {
	f := newTestStateFile(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.Path()), 0755))
	require.NoError(t, os.WriteFile(f.Path(), []byte("{not json"), 0644))

	var state counterState
	err := f.Read(context.Background(), &state)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
