package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// Describe renders a definition as a markdown document: the description,
// the tape conventions and one table row per rule.
func Describe(def *domain.Definition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", def.Name)
	if d := strings.TrimSpace(def.Description); d != "" {
		sb.WriteString(d)
		sb.WriteString("\n\n")
	}

	sb.WriteString("| setting | value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| states | %d (+ halt) |\n", len(def.States))
	fmt.Fprintf(&sb, "| tape capacity | %d |\n", def.Capacity())
	fmt.Fprintf(&sb, "| blank | `%s` |\n", def.BlankSymbol())
	if def.Sentinel != "" {
		fmt.Fprintf(&sb, "| sentinel | `%s` |\n", def.Sentinel)
	}
	if def.Accept != "" || def.Reject != "" {
		fmt.Fprintf(&sb, "| accept / reject | `%s` / `%s` |\n", def.Accept, def.Reject)
	}

	sb.WriteString("\n## Transitions\n\n")
	sb.WriteString("| state | read | write | move | next |\n|---|---|---|---|---|\n")
	for i, s := range def.States {
		name := compiler.StateName(def, i)
		for _, t := range s.Transitions {
			fmt.Fprintf(&sb, "| %s | `%s` | `%s` | %s | %s |\n", name, t.Read, t.Write, t.Move, t.Next)
		}
		if s.Comment != "" {
			fmt.Fprintf(&sb, "| %s | | | | _%s_ |\n", name, s.Comment)
		}
	}
	return sb.String()
}
