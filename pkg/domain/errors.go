package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is returned when a machine is declared with an impossible shape.
	ErrConfig = errors.New("invalid machine configuration")

	// ErrCapacity is returned when more states are registered than declared.
	ErrCapacity = errors.New("state capacity exceeded")

	// ErrInputTooLarge is returned when the input leaves no room for a trailing blank.
	ErrInputTooLarge = errors.New("input too large for tape")

	// ErrNoTransition is returned when the table has no rule for the current (state, symbol).
	ErrNoTransition = errors.New("no transition")

	// ErrTapeOverrun is returned when a move would leave the tape.
	ErrTapeOverrun = errors.New("tape overrun")
)

// ErrMachineNotFound is returned when a loader has no definition for a name.
var ErrMachineNotFound = errors.New("machine not found")

// ErrRunNotFound is returned when a run key cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ConfigError reports a machine constructed with an unusable declaration.
type ConfigError struct {
	StateCount   int
	TapeCapacity int
	Msg          string
}

func (e *ConfigError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", ErrConfig, e.Msg)
	}
	return fmt.Sprintf("%s: %d states declared, at least 2 required", ErrConfig, e.StateCount)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// CapacityError reports an AddState call past the declared state count.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: at most %d states can be registered (the last id is reserved for halting)", ErrCapacity, e.Limit)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }

// InputTooLargeError reports an input of Length symbols on a tape of Capacity cells.
type InputTooLargeError struct {
	Length   int
	Capacity int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("%s: %d symbols, capacity %d (one cell is reserved for a trailing blank)", ErrInputTooLarge, e.Length, e.Capacity)
}

func (e *InputTooLargeError) Unwrap() error { return ErrInputTooLarge }

// NoTransitionError reports the (state, symbol) pair the table has no rule for.
type NoTransitionError struct {
	State  StateID
	Symbol Symbol
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("%s: state %d, symbol %q", ErrNoTransition, e.State, rune(e.Symbol))
}

func (e *NoTransitionError) Unwrap() error { return ErrNoTransition }

// TapeOverrunError reports a move that would put the head outside [0, Capacity).
type TapeOverrunError struct {
	State    StateID
	Head     int
	Move     Move
	Capacity int
}

func (e *TapeOverrunError) Error() string {
	return fmt.Sprintf("%s: state %d at cell %d cannot move %s (capacity %d)", ErrTapeOverrun, e.State, e.Head, e.Move, e.Capacity)
}

func (e *TapeOverrunError) Unwrap() error { return ErrTapeOverrun }

// Error kinds, used as stable labels for metrics and API payloads.
const (
	KindConfig        = "config"
	KindCapacity      = "capacity"
	KindInputTooLarge = "input_too_large"
	KindNoTransition  = "no_transition"
	KindTapeOverrun   = "tape_overrun"
	KindUnknown       = "unknown"
)

// ErrorKind classifies err into one of the Kind constants.
// It returns "" for a nil error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfig):
		return KindConfig
	case errors.Is(err, ErrCapacity):
		return KindCapacity
	case errors.Is(err, ErrInputTooLarge):
		return KindInputTooLarge
	case errors.Is(err, ErrNoTransition):
		return KindNoTransition
	case errors.Is(err, ErrTapeOverrun):
		return KindTapeOverrun
	default:
		return KindUnknown
	}
}

// ErrInvalidDefinition is returned when a Definition cannot be turned into a machine.
var ErrInvalidDefinition = errors.New("invalid definition")

// DefinitionError locates a problem in a Definition. State and Transition
// are -1 when the problem is not tied to one.
type DefinitionError struct {
	Machine    string
	State      int
	Transition int
	Msg        string
}

func (e *DefinitionError) Error() string {
	where := e.Machine
	if where == "" {
		where = "<unnamed>"
	}
	if e.State >= 0 {
		where = fmt.Sprintf("%s: state %d", where, e.State)
	}
	if e.Transition >= 0 {
		where = fmt.Sprintf("%s, transition %d", where, e.Transition)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidDefinition, where, e.Msg)
}

func (e *DefinitionError) Unwrap() error { return ErrInvalidDefinition }
