package machine

import (
	"github.com/aretw0/turing/pkg/domain"
)

// Machine is a deterministic single-tape executor.
//
// The state table is fixed once every state is registered and may be
// shared between forks. The tape, head and current state belong to one
// Machine and must not be used from several goroutines at once.
type Machine struct {
	states     []*domain.State
	registered int // next id to assign, plus one
	haltID     domain.StateID

	capacity int
	blank    domain.Symbol
	tracer   func(domain.StepEvent)

	tape    *Tape
	head    int
	current domain.StateID
	steps   int
}

// New declares a machine with totalStateCount states. The last id,
// totalStateCount-1, is the halting state and never holds a State.
func New(totalStateCount int, opts ...Option) (*Machine, error) {
	if totalStateCount < 2 {
		return nil, &domain.ConfigError{StateCount: totalStateCount}
	}

	m := &Machine{
		states:     make([]*domain.State, totalStateCount-1),
		registered: 1,
		haltID:     domain.StateID(totalStateCount - 1),
		capacity:   DefaultTapeCapacity,
		blank:      domain.DefaultBlank,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.capacity < 1 {
		return nil, &domain.ConfigError{
			StateCount:   totalStateCount,
			TapeCapacity: m.capacity,
			Msg:          "tape capacity must be at least 1",
		}
	}
	m.tape = NewTape(m.capacity, m.blank)

	return m, nil
}

// AddState registers s in the next free slot. Slots are filled in call
// order starting at 0, whatever s.ID says.
func (m *Machine) AddState(s *domain.State) error {
	if m.registered > len(m.states) {
		return &domain.CapacityError{Limit: len(m.states)}
	}
	m.states[m.registered-1] = s
	m.registered++
	return nil
}

// Execute runs the table on input from state 0 until the halting state is
// reached and returns a copy of the whole tape.
// On error no output is returned; the error is one of the domain typed errors.
func (m *Machine) Execute(input []domain.Symbol) ([]domain.Symbol, error) {
	m.steps = 0
	if err := m.tape.Reset(input); err != nil {
		return nil, err
	}
	m.head = 0
	m.current = 0

	for m.current != m.haltID {
		sym := m.tape.Read(m.head)

		t, ok := m.lookup(m.current, sym)
		if !ok {
			return nil, &domain.NoTransitionError{State: m.current, Symbol: sym}
		}

		next := m.head + int(t.Move)
		if !m.tape.InBounds(next) {
			return nil, &domain.TapeOverrunError{
				State:    m.current,
				Head:     m.head,
				Move:     t.Move,
				Capacity: m.tape.Len(),
			}
		}

		m.tape.Write(m.head, t.Write)
		m.steps++
		if m.tracer != nil {
			m.tracer(domain.StepEvent{
				Step:  m.steps,
				State: m.current,
				Head:  m.head,
				Read:  sym,
				Write: t.Write,
				Move:  t.Move,
				Next:  t.Next,
			})
		}

		m.head = next
		m.current = t.Next
	}

	return m.tape.Snapshot(), nil
}

// ExecuteString is Execute over byte strings.
func (m *Machine) ExecuteString(input string) (string, error) {
	out, err := m.Execute(domain.Symbols(input))
	if err != nil {
		return "", err
	}
	return domain.SymbolString(out), nil
}

// lookup treats ids without a registered State (unfilled slots, or ids past
// the halting id) as states with no transitions.
func (m *Machine) lookup(id domain.StateID, sym domain.Symbol) (domain.Transition, bool) {
	if id < 0 || int(id) >= len(m.states) {
		return domain.Transition{}, false
	}
	s := m.states[id]
	if s == nil {
		return domain.Transition{}, false
	}
	return s.Lookup(sym)
}

// Fork returns a machine sharing this one's state table with its own tape,
// head and current state. Options may replace the tracer or the tape
// settings; an invalid capacity keeps the parent's.
func (m *Machine) Fork(opts ...Option) *Machine {
	f := &Machine{
		states:     m.states,
		registered: m.registered,
		haltID:     m.haltID,
		capacity:   m.capacity,
		blank:      m.blank,
		tracer:     m.tracer,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.capacity < 1 {
		f.capacity = m.capacity
	}
	f.tape = NewTape(f.capacity, f.blank)
	return f
}

// Steps returns the number of transitions applied by the last Execute call.
func (m *Machine) Steps() int {
	return m.steps
}

// Head returns the head position after the last Execute call.
func (m *Machine) Head() int {
	return m.head
}

// HaltID returns the reserved halting state id.
func (m *Machine) HaltID() domain.StateID {
	return m.haltID
}

// Capacity returns the tape size.
func (m *Machine) Capacity() int {
	return m.tape.Len()
}

// Blank returns the padding symbol.
func (m *Machine) Blank() domain.Symbol {
	return m.blank
}

// Registered returns the number of states added so far.
func (m *Machine) Registered() int {
	return m.registered - 1
}

// State returns the state registered at id, if any.
func (m *Machine) State(id domain.StateID) (*domain.State, bool) {
	if id < 0 || int(id) >= len(m.states) || m.states[id] == nil {
		return nil, false
	}
	return m.states[id], true
}
