package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing/pkg/domain"
)

// Loader implements ports.DefinitionLoader using an in-memory map.
type Loader struct {
	defs map[string]domain.Definition
}

// NewLoader creates a Loader from domain definitions.
// Names must be present and unique.
func NewLoader(defs ...domain.Definition) (*Loader, error) {
	data := make(map[string]domain.Definition, len(defs))
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("definition missing name")
		}
		if _, dup := data[d.Name]; dup {
			return nil, fmt.Errorf("duplicate definition %q", d.Name)
		}
		data[d.Name] = d
	}
	return &Loader{defs: data}, nil
}

// GetDefinition returns a copy of the named definition.
func (l *Loader) GetDefinition(name string) (*domain.Definition, error) {
	d, ok := l.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	d.States = append([]domain.StateDefinition(nil), d.States...)
	return &d, nil
}

// ListDefinitions returns all available machine names.
func (l *Loader) ListDefinitions() ([]string, error) {
	keys := make([]string, 0, len(l.defs))
	for k := range l.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
