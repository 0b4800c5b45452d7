package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// RunStore persists finished runs keyed by domain.RunKey.
// Execution is deterministic, so a stored run is a valid answer for any
// later request with the same key.
type RunStore interface {
	// Save persists the run under key, replacing any previous value.
	Save(ctx context.Context, key string, run *domain.Run) error

	// Load retrieves the run stored under key.
	// Returns domain.ErrRunNotFound if the key does not exist.
	Load(ctx context.Context, key string) (*domain.Run, error)

	// Delete removes the run stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently stored.
	List(ctx context.Context) ([]string, error)
}
