package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
)

// Severity ranks a Finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one lint result. State is empty for table-wide findings.
type Finding struct {
	Severity Severity `json:"severity"`
	State    string   `json:"state,omitempty"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	if f.State == "" {
		return fmt.Sprintf("%s: %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.State, f.Message)
}

// Lint inspects def without running it. It reports compile errors, states
// unreachable from state 0, states from which halt cannot be reached, and
// symbols of the table's alphabet that a reachable state has no rule for.
// A missing rule is only a finding: the engine treats it as an error at run time.
func Lint(def *domain.Definition) []Finding {
	states, err := compiler.Resolve(def)
	if err != nil {
		return []Finding{{Severity: SeverityError, Message: err.Error()}}
	}

	haltID := domain.StateID(len(states))
	name := func(id domain.StateID) string { return compiler.StateName(def, int(id)) }

	// 1. Forward crawl from state 0
	reachable := crawl([]domain.StateID{0}, func(id domain.StateID) []domain.StateID {
		if id == haltID {
			return nil
		}
		var next []domain.StateID
		for _, t := range states[id].Transitions() {
			next = append(next, t.Next)
		}
		return next
	})

	// 2. Backward crawl from halt
	preds := make(map[domain.StateID][]domain.StateID)
	for _, s := range states {
		for _, t := range s.Transitions() {
			preds[t.Next] = append(preds[t.Next], s.ID)
		}
	}
	canHalt := crawl([]domain.StateID{haltID}, func(id domain.StateID) []domain.StateID {
		return preds[id]
	})

	var findings []Finding
	if !reachable[haltID] {
		findings = append(findings, Finding{
			Severity: SeverityError,
			Message:  "halt is not reachable from the first state; every run fails",
		})
	}

	alphabet := Alphabet(def)
	for _, s := range states {
		if !reachable[s.ID] {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				State:    name(s.ID),
				Message:  "unreachable from the first state",
			})
			continue
		}
		if !canHalt[s.ID] {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				State:    name(s.ID),
				Message:  "cannot reach halt",
			})
		}

		var gaps []string
		for _, sym := range alphabet {
			if _, ok := s.Lookup(sym); !ok {
				gaps = append(gaps, sym.String())
			}
		}
		if len(gaps) > 0 {
			findings = append(findings, Finding{
				Severity: SeverityInfo,
				State:    name(s.ID),
				Message:  "no rule for " + strings.Join(gaps, ", "),
			})
		}
	}
	return findings
}

// Alphabet returns every symbol the table reads or writes, plus the blank
// and the sentinel, sorted.
func Alphabet(def *domain.Definition) []domain.Symbol {
	seen := map[domain.Symbol]bool{def.BlankSymbol(): true}
	if len(def.Sentinel) == 1 {
		seen[domain.Symbol(def.Sentinel[0])] = true
	}
	for _, s := range def.States {
		for _, t := range s.Transitions {
			if len(t.Read) == 1 {
				seen[domain.Symbol(t.Read[0])] = true
			}
			if len(t.Write) == 1 {
				seen[domain.Symbol(t.Write[0])] = true
			}
		}
	}

	out := make([]domain.Symbol, 0, len(seen))
	for sym := range seen {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func crawl(start []domain.StateID, next func(domain.StateID) []domain.StateID) map[domain.StateID]bool {
	visited := make(map[domain.StateID]bool)
	queue := append([]domain.StateID(nil), start...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, n := range next(current) {
			if !visited[n] {
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// Validate returns an error listing the error-severity findings, or nil.
func Validate(def *domain.Definition) error {
	var errs []string
	for _, f := range Lint(def) {
		if f.Severity == SeverityError {
			errs = append(errs, f.String())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}
