package compiler_test

import (
	"testing"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/library"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unquotedYAML = `
name: numeric
blank: "_"
tape_capacity: 8
states:
  - name: start
    transitions:
      - read: 0
        write: 1
        move: right
        next: 1
  - transitions:
      - {read: "_", write: "_", move: -1, next: halt}
`

func TestParser_WeakTyping(t *testing.T) {
	def, err := compiler.NewParser().Parse([]byte(unquotedYAML))
	require.NoError(t, err)

	assert.Equal(t, "numeric", def.Name)
	assert.Equal(t, 8, def.TapeCapacity)
	require.Len(t, def.States, 2)
	assert.Equal(t, domain.TransitionDefinition{Read: "0", Write: "1", Move: "right", Next: "1"}, def.States[0].Transitions[0])
	assert.Equal(t, "-1", def.States[1].Transitions[0].Move)

	m, err := compiler.Compile(def)
	require.NoError(t, err)
	assert.Equal(t, 8, m.Capacity())
	assert.Equal(t, domain.Symbol('_'), m.Blank())

	out, err := m.ExecuteString("0")
	require.NoError(t, err)
	assert.Equal(t, "1_______", out)
}

func TestParser_JSON(t *testing.T) {
	data := []byte(`{"name":"j","states":[{"name":"a","transitions":[{"read":"B","write":"x","move":"R","next":"halt"}]}]}`)
	def, err := compiler.NewParser().Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "j", def.Name)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed", data: "name: [unterminated"},
		{name: "empty", data: ""},
		{name: "missing name", data: "states: []"},
		{name: "bad field type", data: "name: x\nstates: [1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.NewParser().Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestCompile_EqualRuns(t *testing.T) {
	def := library.MustGet(library.EqualRuns)
	m, err := compiler.Compile(def)
	require.NoError(t, err)
	assert.Equal(t, domain.StateID(8), m.HaltID())
	assert.Equal(t, 8, m.Registered())

	tests := map[string]string{
		"0000011": domain.VerdictReject,
		"01":      domain.VerdictAccept,
		"":        domain.VerdictReject,
		"0":       domain.VerdictReject,
		"0011":    domain.VerdictAccept,
	}
	for in, want := range tests {
		out, err := m.ExecuteString(def.Frame(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, def.Verdict(out), in)
	}
}

func TestCompile_OptionsOverrideDefinition(t *testing.T) {
	def := library.MustGet(library.EqualRuns)
	m, err := compiler.Compile(def, machine.WithTapeCapacity(10))
	require.NoError(t, err)
	assert.Equal(t, 10, m.Capacity())
}

func TestCompile_Errors(t *testing.T) {
	rule := func(read, write, move, next string) domain.TransitionDefinition {
		return domain.TransitionDefinition{Read: read, Write: write, Move: move, Next: next}
	}
	one := func(rules ...domain.TransitionDefinition) []domain.StateDefinition {
		return []domain.StateDefinition{{Name: "a", Transitions: rules}}
	}

	tests := []struct {
		name string
		def  domain.Definition
	}{
		{name: "no states", def: domain.Definition{Name: "x"}},
		{name: "long blank", def: domain.Definition{Name: "x", Blank: "BB", States: one()}},
		{name: "long sentinel", def: domain.Definition{Name: "x", Sentinel: "<>", States: one()}},
		{name: "long accept", def: domain.Definition{Name: "x", Accept: "yes", States: one()}},
		{name: "long reject", def: domain.Definition{Name: "x", Reject: "no", States: one()}},
		{name: "multi byte read", def: domain.Definition{Name: "x", States: one(rule("ab", "a", "R", "halt"))}},
		{name: "empty write", def: domain.Definition{Name: "x", States: one(rule("a", "", "R", "halt"))}},
		{name: "bad move", def: domain.Definition{Name: "x", States: one(rule("a", "a", "up", "halt"))}},
		{name: "unknown next", def: domain.Definition{Name: "x", States: one(rule("a", "a", "R", "nowhere"))}},
		{name: "next out of range", def: domain.Definition{Name: "x", States: one(rule("a", "a", "R", "5"))}},
		{name: "missing next", def: domain.Definition{Name: "x", States: one(rule("a", "a", "R", ""))}},
		{name: "duplicate read", def: domain.Definition{Name: "x", States: one(rule("a", "a", "R", "halt"), rule("a", "b", "L", "halt"))}},
		{name: "reserved name", def: domain.Definition{Name: "x", States: []domain.StateDefinition{{Name: "halt"}}}},
		{name: "duplicate name", def: domain.Definition{Name: "x", States: []domain.StateDefinition{{Name: "a"}, {Name: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.Compile(&tt.def)
			require.Error(t, err)
		})
	}
}

func TestCompile_ErrorLocation(t *testing.T) {
	def := domain.Definition{
		Name: "loc",
		States: []domain.StateDefinition{
			{Name: "a", Transitions: []domain.TransitionDefinition{{Read: "a", Write: "a", Move: "R", Next: "b"}}},
			{Name: "b", Transitions: []domain.TransitionDefinition{
				{Read: "a", Write: "a", Move: "R", Next: "halt"},
				{Read: "b", Write: "b", Move: "sideways", Next: "halt"},
			}},
		},
	}

	_, err := compiler.Compile(&def)
	var defErr *domain.DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Equal(t, 1, defErr.State)
	assert.Equal(t, 1, defErr.Transition)
	assert.Contains(t, err.Error(), "loc: state 1, transition 1")
}

func TestCompile_NumericAndNamedTargets(t *testing.T) {
	def := domain.Definition{
		Name:         "targets",
		TapeCapacity: 4,
		States: []domain.StateDefinition{
			{Transitions: []domain.TransitionDefinition{{Read: "B", Write: "1", Move: "R", Next: "q1"}}},
			{Transitions: []domain.TransitionDefinition{{Read: "B", Write: "2", Move: "R", Next: "2"}}},
		},
	}
	m, err := compiler.Compile(&def)
	require.NoError(t, err)

	out, err := m.ExecuteString("")
	require.NoError(t, err)
	assert.Equal(t, "12BB", out)
}

func TestParseMove(t *testing.T) {
	for _, in := range []string{"L", "l", "left", "LEFT", "-1", "<", " L "} {
		mv, err := compiler.ParseMove(in)
		require.NoError(t, err, in)
		assert.Equal(t, domain.Left, mv, in)
	}
	for _, in := range []string{"R", "right", "1", "+1", ">"} {
		mv, err := compiler.ParseMove(in)
		require.NoError(t, err, in)
		assert.Equal(t, domain.Right, mv, in)
	}
	for _, in := range []string{"", "0", "2", "stay"} {
		_, err := compiler.ParseMove(in)
		assert.Error(t, err, in)
	}
}

func TestStateName(t *testing.T) {
	def := &domain.Definition{States: []domain.StateDefinition{{Name: "first"}, {}}}
	assert.Equal(t, "first", compiler.StateName(def, 0))
	assert.Equal(t, "q1", compiler.StateName(def, 1))
	assert.Equal(t, domain.HaltStateName, compiler.StateName(def, 2))
}
