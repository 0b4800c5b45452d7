package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionLoader.
// expected maps machine names to the number of working states each should declare.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, expected map[string]int) {
	t.Helper()

	// 1. Test GetDefinition (Success)
	t.Run("GetDefinition_Success", func(t *testing.T) {
		for name, states := range expected {
			def, err := loader.GetDefinition(name)
			if err != nil {
				t.Fatalf("unexpected error getting definition %s: %v", name, err)
			}
			if def.Name != name {
				t.Errorf("name mismatch: got %q, want %q", def.Name, name)
			}
			if len(def.States) != states {
				t.Errorf("state count mismatch for %s: got %d, want %d", name, len(def.States), states)
			}
		}
	})

	// 2. Test GetDefinition (NotFound)
	t.Run("GetDefinition_NotFound", func(t *testing.T) {
		_, err := loader.GetDefinition("non-existent-machine")
		if !errors.Is(err, domain.ErrMachineNotFound) {
			t.Errorf("expected ErrMachineNotFound, got %v", err)
		}
	})

	// 3. Test ListDefinitions
	t.Run("ListDefinitions", func(t *testing.T) {
		names, err := loader.ListDefinitions()
		if err != nil {
			t.Fatalf("unexpected error listing definitions: %v", err)
		}

		if len(names) != len(expected) {
			t.Errorf("expected %d definitions, got %d", len(expected), len(names))
		}

		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("names not sorted: %v", names)
				break
			}
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range expected {
			if !lookup[name] {
				t.Errorf("definition %s missing from list", name)
			}
		}
	})
}
