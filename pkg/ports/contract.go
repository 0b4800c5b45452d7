package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	key := "contract-test-run-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Run {
		return &domain.Run{
			ID:       id,
			Key:      key,
			Machine:  "equal-runs",
			Input:    "01",
			Tape:     "E01E",
			Output:   "1BBBB",
			Verdict:  domain.VerdictAccept,
			Steps:    17,
			Started:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Duration: 3 * time.Millisecond,
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		run := sample("run-1")
		err := store.Save(ctx, key, run)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, run.ID, loaded.ID)
		assert.Equal(t, run.Output, loaded.Output)
		assert.Equal(t, run.Verdict, loaded.Verdict)
		assert.Equal(t, run.Steps, loaded.Steps)
		assert.True(t, run.Started.Equal(loaded.Started))
		assert.Equal(t, run.Duration, loaded.Duration)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sample("run-copy")))

		first, err := store.Load(ctx, key)
		require.NoError(t, err)
		first.Output = "mutated"

		second, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "1BBBB", second.Output)
	})

	t.Run("Save overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sample("run-a")))
		require.NoError(t, store.Save(ctx, key, sample("run-b")))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "run-b", loaded.ID)
	})

	t.Run("Failed runs keep their classification", func(t *testing.T) {
		failedKey := key + "-failed"
		run := sample("run-failed")
		run.Key = failedKey
		run.Output = ""
		run.Verdict = ""
		run.ErrKind = domain.KindTapeOverrun
		run.Error = "tape overrun"
		require.NoError(t, store.Save(ctx, failedKey, run))
		defer func() { _ = store.Delete(ctx, failedKey) }()

		loaded, err := store.Load(ctx, failedKey)
		require.NoError(t, err)
		assert.True(t, loaded.Failed())
		assert.Equal(t, domain.KindTapeOverrun, loaded.ErrKind)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sample("run-1")))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting a missing key should succeed")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		_ = store.Save(ctx, k1, sample("run-1"))
		_ = store.Save(ctx, k2, sample("run-2"))

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
