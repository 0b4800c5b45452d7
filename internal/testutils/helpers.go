// Package testutils holds fixtures shared by adapter and CLI tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// FlipDoc is a one-state machine document that inverts a binary word.
const FlipDoc = `---
name: flip
blank: B
tape_capacity: 8
states:
  - name: start
    transitions:
      - {read: 0, write: 1, move: R, next: start}
      - {read: 1, write: 0, move: R, next: start}
      - {read: B, write: B, move: L, next: halt}
---
Flips every bit of a binary word.`

// SetupTestRepo initializes a Loam repository in a fresh temporary directory
// and returns its absolute path. It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteMachines writes one document per entry (file name -> content) into dir.
func WriteMachines(t *testing.T, dir string, docs map[string]string) {
	t.Helper()
	for name, content := range docs {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "write %s", name)
	}
}

// MachineDir returns a plain temporary directory holding docs, for code
// that opens the directory itself.
func MachineDir(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	WriteMachines(t, dir, docs)
	return dir
}
