package domain

import "sort"

// State is a node of the transition table. It owns at most one Transition
// per read symbol.
type State struct {
	ID          StateID
	transitions map[Symbol]Transition
}

// NewState creates a state with an empty transition table.
func NewState(id StateID) *State {
	return &State{
		ID:          id,
		transitions: make(map[Symbol]Transition),
	}
}

// AddTransition registers t under t.Read.
// A second transition for the same read symbol replaces the first without
// error; registering duplicates is a table bug and callers must not rely on
// which one wins.
func (s *State) AddTransition(t Transition) {
	if s.transitions == nil {
		s.transitions = make(map[Symbol]Transition)
	}
	s.transitions[t.Read] = t
}

// Lookup returns the transition registered for sym.
func (s *State) Lookup(sym Symbol) (Transition, bool) {
	t, ok := s.transitions[sym]
	return t, ok
}

// Transitions lists the registered transitions ordered by read symbol.
func (s *State) Transitions() []Transition {
	out := make([]Transition, 0, len(s.transitions))
	for _, t := range s.transitions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Read < out[j].Read })
	return out
}
