package domain

import "strconv"

// Move is the unit head displacement applied after a write.
type Move int8

const (
	Left  Move = -1
	Right Move = 1
)

// String returns "L" or "R". Any other value renders as its number.
func (m Move) String() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return strconv.Itoa(int(m))
	}
}

// StateID identifies a state by its registration slot.
type StateID int

// Transition is the rule (read) -> (write, move, next).
// It is a value type; once built it is never mutated.
type Transition struct {
	Read  Symbol  `json:"read"`
	Write Symbol  `json:"write"`
	Move  Move    `json:"move"`
	Next  StateID `json:"next"`
}

// NewTransition stores its arguments verbatim. Checking that move is a unit
// step and that the symbols belong to an alphabet is up to the caller.
func NewTransition(read, write Symbol, move Move, next StateID) Transition {
	return Transition{
		Read:  read,
		Write: write,
		Move:  move,
		Next:  next,
	}
}
