package machine

import "github.com/aretw0/turing/pkg/domain"

// DefaultTapeCapacity is the tape size used when WithTapeCapacity is not given.
const DefaultTapeCapacity = domain.DefaultTapeCapacity

// Option configures a Machine.
type Option func(*Machine)

// WithTapeCapacity fixes the number of tape cells.
func WithTapeCapacity(capacity int) Option {
	return func(m *Machine) {
		m.capacity = capacity
	}
}

// WithBlank sets the symbol used to pad the tape.
func WithBlank(blank domain.Symbol) Option {
	return func(m *Machine) {
		m.blank = blank
	}
}

// WithTracer registers a callback invoked after every applied transition.
func WithTracer(fn func(domain.StepEvent)) Option {
	return func(m *Machine) {
		m.tracer = fn
	}
}
