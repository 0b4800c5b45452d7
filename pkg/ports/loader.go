package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// DefinitionLoader defines how the driver retrieves machine definitions.
// This allows the storage layer (Loam, Memory, embedded library) to be decoupled.
type DefinitionLoader interface {
	// GetDefinition retrieves a decoded definition by machine name.
	// Returns domain.ErrMachineNotFound if the name is unknown.
	GetDefinition(name string) (*domain.Definition, error)

	// ListDefinitions returns the names of all available machines, sorted.
	ListDefinitions() ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// The registry uses it to drop compiled machines when their source is edited.
type Watchable interface {
	// Watch returns a channel that receives the name of each changed definition.
	Watch(ctx context.Context) (<-chan string, error)
}
