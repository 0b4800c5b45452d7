package dsl

import (
	"fmt"
	"strconv"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
)

// Head moves accepted by On.
const (
	L = "L"
	R = "R"
)

// Halt is the target that stops the machine.
const Halt = domain.HaltStateName

// Builder manages the table construction.
// States are registered in the order State is first called for them.
type Builder struct {
	def    domain.Definition
	states []*StateBuilder
	index  map[string]*StateBuilder
}

// New creates a new table builder for machine name.
func New(name string) *Builder {
	return &Builder{
		def:   domain.Definition{Name: name},
		index: make(map[string]*StateBuilder),
	}
}

// Describe sets the human description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Blank sets the padding symbol.
func (b *Builder) Blank(symbol string) *Builder {
	b.def.Blank = symbol
	return b
}

// Sentinel sets the symbol written around every input.
func (b *Builder) Sentinel(symbol string) *Builder {
	b.def.Sentinel = symbol
	return b
}

// Markers sets the accept and reject symbols read from cell 0 after halting.
func (b *Builder) Markers(accept, reject string) *Builder {
	b.def.Accept = accept
	b.def.Reject = reject
	return b
}

// Capacity fixes the tape size.
func (b *Builder) Capacity(cells int) *Builder {
	b.def.TapeCapacity = cells
	return b
}

// State returns the builder for the named state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.index[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		state:   domain.StateDefinition{Name: name},
		builder: b,
	}
	b.index[name] = sb
	b.states = append(b.states, sb)
	return sb
}

// Definition returns the table as built so far, without validation.
func (b *Builder) Definition() domain.Definition {
	def := b.def
	def.States = make([]domain.StateDefinition, len(b.states))
	for i, sb := range b.states {
		s := sb.state
		s.Transitions = append([]domain.TransitionDefinition(nil), sb.state.Transitions...)
		def.States[i] = s
	}
	return def
}

// Build validates the table and returns its Definition.
func (b *Builder) Build() (*domain.Definition, error) {
	def := b.Definition()
	if _, err := compiler.Resolve(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Loader builds every table into an in-memory loader.
func Loader(builders ...*Builder) (*memory.Loader, error) {
	defs := make([]domain.Definition, 0, len(builders))
	for _, b := range builders {
		def, err := b.Build()
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}

	loader, err := memory.NewLoader(defs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state   domain.StateDefinition
	builder *Builder
}

// On adds the rule for reading symbol read.
func (s *StateBuilder) On(read, write, move, next string) *StateBuilder {
	s.state.Transitions = append(s.state.Transitions, domain.TransitionDefinition{
		Read:  read,
		Write: write,
		Move:  move,
		Next:  next,
	})
	return s
}

// Keep adds a rule that leaves each of symbols unchanged and moves on.
func (s *StateBuilder) Keep(move, next string, symbols ...string) *StateBuilder {
	for _, sym := range symbols {
		s.On(sym, sym, move, next)
	}
	return s
}

// Comment annotates the state.
func (s *StateBuilder) Comment(text string) *StateBuilder {
	s.state.Comment = text
	return s
}

// ID is the slot the state will be registered in.
func (s *StateBuilder) ID() domain.StateID {
	for i, sb := range s.builder.states {
		if sb == s {
			return domain.StateID(i)
		}
	}
	return -1
}

// Ref returns the numeric target for this state, usable as next in On.
func (s *StateBuilder) Ref() string {
	return strconv.Itoa(int(s.ID()))
}

// State continues with another state of the same builder.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Build finishes the table.
func (s *StateBuilder) Build() (*domain.Definition, error) {
	return s.builder.Build()
}
