package library_test

import (
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitions_Compile(t *testing.T) {
	defs, err := library.Definitions()
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	for i := range defs {
		def := &defs[i]
		t.Run(def.Name, func(t *testing.T) {
			_, err := compiler.Compile(def)
			assert.NoError(t, err)
			assert.NotEmpty(t, def.Description)
		})
	}
}

func TestEqualRuns_Shape(t *testing.T) {
	def := library.MustGet(library.EqualRuns)
	assert.Equal(t, 9, def.StateCount())
	assert.Equal(t, "E", def.Sentinel)
	assert.Equal(t, "1", def.Accept)
	assert.Equal(t, "0", def.Reject)
	assert.Equal(t, 100, def.Capacity())
}

func TestComplement(t *testing.T) {
	def := library.MustGet("complement")
	m, err := compiler.Compile(def)
	require.NoError(t, err)

	out, err := m.ExecuteString(def.Frame("0110"))
	require.NoError(t, err)
	assert.Equal(t, "E1001E", out[:6])
	assert.Equal(t, 4, m.Head())
}

func TestLoader(t *testing.T) {
	loader, err := library.Loader()
	require.NoError(t, err)

	names, err := loader.ListDefinitions()
	require.NoError(t, err)
	assert.Equal(t, []string{"complement", "equal-runs"}, names)
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() { library.MustGet("does-not-exist") })
}
