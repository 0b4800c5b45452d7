// Package library ships the machine definitions built into the turing CLI.
package library

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
)

//go:embed *.yaml
var files embed.FS

// EqualRuns is the name of the 0^n1^n decider.
const EqualRuns = "equal-runs"

// Definitions parses every embedded definition, ordered by name.
func Definitions() ([]domain.Definition, error) {
	names, err := fs.Glob(files, "*.yaml")
	if err != nil {
		return nil, err
	}

	parser := compiler.NewParser()
	defs := make([]domain.Definition, 0, len(names))
	for _, name := range names {
		data, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		def, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defs = append(defs, *def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// Loader returns an in-memory loader over the embedded definitions.
func Loader() (*memory.Loader, error) {
	defs, err := Definitions()
	if err != nil {
		return nil, err
	}
	return memory.NewLoader(defs...)
}

// MustGet returns a built-in definition and panics if it is missing.
// It is meant for tests and examples.
func MustGet(name string) *domain.Definition {
	defs, err := Definitions()
	if err != nil {
		panic(err)
	}
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i]
		}
	}
	panic(fmt.Sprintf("library: no definition named %q", name))
}
