package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

// Loader adapts the Loam library to the DefinitionLoader interface.
// Each document is one machine: the frontmatter holds the table and the
// body, when present, becomes the description.
type Loader struct {
	Repo *loam.TypedRepository[DefinitionMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DefinitionMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[DefinitionMetadata](repo)), nil
}

// GetDefinition retrieves a machine document and decodes it.
// Loam resolves "equal-runs" to equal-runs.md (or .yaml, .json).
func (l *Loader) GetDefinition(name string) (*domain.Definition, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, name)
	if err != nil {
		if !l.exists(name) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
		}
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	return l.decode(doc.ID, doc.Data, doc.Content)
}

// exists tells a missing document apart from one that failed to load.
func (l *Loader) exists(name string) bool {
	names, err := l.ListDefinitions()
	if err != nil {
		return true
	}
	i := sort.SearchStrings(names, name)
	return i < len(names) && names[i] == name
}

func (l *Loader) decode(docID string, meta DefinitionMetadata, content string) (*domain.Definition, error) {
	if meta.Name == "" {
		meta.Name = trimExtension(docID)
	}
	if meta.Description == "" {
		meta.Description = strings.TrimSpace(content)
	}

	def, err := compiler.Decode(meta.raw())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", docID, err)
	}
	return def, nil
}

// ListDefinitions lists all machines in the repository.
func (l *Loader) ListDefinitions() ([]string, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		name := doc.Data.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}

		// Collision Detection
		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: machine '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
