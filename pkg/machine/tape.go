package machine

import "github.com/aretw0/turing/pkg/domain"

// Tape is a fixed-capacity cell buffer. Its length never changes after
// construction.
type Tape struct {
	cells []domain.Symbol
	blank domain.Symbol
}

// NewTape allocates a tape of capacity cells filled with blank.
func NewTape(capacity int, blank domain.Symbol) *Tape {
	t := &Tape{
		cells: make([]domain.Symbol, capacity),
		blank: blank,
	}
	t.clear()
	return t
}

// Reset copies input into the leading cells and blanks the rest.
// The input must be strictly shorter than the tape, so the last cell is
// always blank after a reset.
func (t *Tape) Reset(input []domain.Symbol) error {
	if len(input) >= len(t.cells) {
		return &domain.InputTooLargeError{Length: len(input), Capacity: len(t.cells)}
	}
	n := copy(t.cells, input)
	for i := n; i < len(t.cells); i++ {
		t.cells[i] = t.blank
	}
	return nil
}

// Len returns the tape capacity.
func (t *Tape) Len() int {
	return len(t.cells)
}

// InBounds reports whether i addresses a cell.
func (t *Tape) InBounds(i int) bool {
	return i >= 0 && i < len(t.cells)
}

// Read returns the symbol at i. i must be in bounds.
func (t *Tape) Read(i int) domain.Symbol {
	return t.cells[i]
}

// Write stores s at i. i must be in bounds.
func (t *Tape) Write(i int, s domain.Symbol) {
	t.cells[i] = s
}

// Snapshot returns a copy of every cell.
func (t *Tape) Snapshot() []domain.Symbol {
	out := make([]domain.Symbol, len(t.cells))
	copy(out, t.cells)
	return out
}

func (t *Tape) clear() {
	for i := range t.cells {
		t.cells[i] = t.blank
	}
}
