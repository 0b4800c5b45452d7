package machine

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTape_Reset(t *testing.T) {
	tape := NewTape(5, '_')
	assert.Equal(t, "_____", domain.SymbolString(tape.Snapshot()))

	require.NoError(t, tape.Reset(domain.Symbols("abcd")))
	assert.Equal(t, "abcd_", domain.SymbolString(tape.Snapshot()))

	require.NoError(t, tape.Reset(domain.Symbols("z")))
	assert.Equal(t, "z____", domain.SymbolString(tape.Snapshot()))

	err := tape.Reset(domain.Symbols("abcde"))
	assert.ErrorIs(t, err, domain.ErrInputTooLarge)
}

func TestTape_Bounds(t *testing.T) {
	tape := NewTape(3, 'B')
	assert.False(t, tape.InBounds(-1))
	assert.True(t, tape.InBounds(0))
	assert.True(t, tape.InBounds(2))
	assert.False(t, tape.InBounds(3))
}

func TestTape_SnapshotIsACopy(t *testing.T) {
	tape := NewTape(2, 'B')
	snap := tape.Snapshot()
	snap[0] = 'x'
	assert.Equal(t, domain.Symbol('B'), tape.Read(0))
}
