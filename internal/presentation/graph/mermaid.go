package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	Visited []domain.StateID
	Current domain.StateID
	// HasCurrent distinguishes state 0 from "no current state".
	HasCurrent bool
}

// OverlayFromTrace marks every state a traced run passed through.
// The last transition's target becomes the current state.
func OverlayFromTrace(trace []domain.StepEvent) *GraphOverlay {
	o := &GraphOverlay{}
	for _, ev := range trace {
		o.Visited = append(o.Visited, ev.State)
	}
	if n := len(trace); n > 0 {
		o.Current = trace[n-1].Next
		o.HasCurrent = true
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the transition table.
// Shapes:
// - First state: ((Circle))
// - Halt: (((Double circle)))
// - Default: [Rectangle]
// Rules sharing a source and a target are drawn as one edge labelled
// "read/write,move" per rule. Overlay styles (Visited/Current) are applied
// if provided.
func GenerateMermaid(def *domain.Definition, overlay *GraphOverlay) (string, error) {
	states, err := compiler.Resolve(def)
	if err != nil {
		return "", err
	}
	haltID := domain.StateID(len(states))

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range states {
		opener, closer := "[", "]"
		if s.ID == 0 {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(s.ID), opener, escape(compiler.StateName(def, int(s.ID))), closer))
	}
	sb.WriteString(fmt.Sprintf("    %s(((\"%s\")))\n", nodeID(haltID), domain.HaltStateName))

	for _, s := range states {
		var order []domain.StateID
		labels := make(map[domain.StateID][]string)
		for _, t := range s.Transitions() {
			if _, ok := labels[t.Next]; !ok {
				order = append(order, t.Next)
			}
			labels[t.Next] = append(labels[t.Next], fmt.Sprintf("%s/%s,%s", t.Read, t.Write, t.Move))
		}
		for _, next := range order {
			label := escape(strings.Join(labels[next], "<br/>"))
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(s.ID), label, nodeID(next)))
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.StateID]bool)
		for _, id := range overlay.Visited {
			if seen[id] || id < 0 || id > haltID {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(id)))
		}

		if overlay.HasCurrent && overlay.Current >= 0 && overlay.Current <= haltID {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Current)))
		}
	}

	return sb.String(), nil
}

// nodeID uses slot ids so state names never need sanitizing.
func nodeID(id domain.StateID) string {
	return fmt.Sprintf("q%d", id)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
