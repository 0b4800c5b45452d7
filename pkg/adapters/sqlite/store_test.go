package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/sqlite"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunRunStoreContract(t, openMemory(t))
}

func TestSQLiteStore_FilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "k", &domain.Run{ID: "r", Machine: "m", Output: "1B"}))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	run, err := reopened.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "1B", run.Output)
}

func TestSQLiteStore_CountByVerdict(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", &domain.Run{Machine: "m", Verdict: domain.VerdictAccept}))
	require.NoError(t, store.Save(ctx, "b", &domain.Run{Machine: "m", Verdict: domain.VerdictReject}))
	require.NoError(t, store.Save(ctx, "c", &domain.Run{Machine: "m", Verdict: domain.VerdictReject}))
	require.NoError(t, store.Save(ctx, "d", &domain.Run{Machine: "m", ErrKind: domain.KindNoTransition}))
	require.NoError(t, store.Save(ctx, "e", &domain.Run{Machine: "other", Verdict: domain.VerdictAccept}))

	counts, err := store.CountByVerdict(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		domain.VerdictAccept:    1,
		domain.VerdictReject:    2,
		domain.KindNoTransition: 1,
	}, counts)
}

func TestSQLiteStore_Guards(t *testing.T) {
	_, err := sqlite.Open("  ")
	assert.Error(t, err)

	var nilStore *sqlite.Store
	assert.NoError(t, nilStore.Close())
	assert.Error(t, nilStore.Save(context.Background(), "k", &domain.Run{}))

	store := openMemory(t)
	assert.Error(t, store.Save(context.Background(), "", &domain.Run{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Load(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
