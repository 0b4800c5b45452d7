package tui

import (
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// RenderTape styles a tape for the terminal. Trailing blanks are trimmed
// (never past the head), the head cell is reversed and remaining blanks
// are faint.
func RenderTape(tape string, head int, blank domain.Symbol, p termenv.Profile) string {
	end := len(strings.TrimRight(tape, blank.String()))
	if head >= end && head < len(tape) {
		end = head + 1
	}

	var sb strings.Builder
	for i := 0; i < end; i++ {
		cell := p.String(tape[i : i+1])
		switch {
		case i == head:
			cell = cell.Reverse().Bold()
		case tape[i] == byte(blank):
			cell = cell.Faint()
		default:
			cell = cell.Foreground(p.Color("#a78bfa"))
		}
		sb.WriteString(cell.String())
	}
	return sb.String()
}

// Trim drops trailing blanks without styling.
func Trim(tape string, blank domain.Symbol) string {
	return strings.TrimRight(tape, blank.String())
}
