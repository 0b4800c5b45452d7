package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Compile builds a ready machine from def. States are registered in
// declaration order, so the i-th state gets id i and the halting id is
// len(def.States).
//
// These are the checks a driver owes the engine: symbols are single
// bytes, moves are unit steps, every Next resolves, and no state declares
// two rules for the same read symbol. Reachability is not checked.
//
// opts are applied after the definition's own tape settings.
func Compile(def *domain.Definition, opts ...machine.Option) (*machine.Machine, error) {
	states, err := Resolve(def)
	if err != nil {
		return nil, err
	}

	base := []machine.Option{
		machine.WithTapeCapacity(def.Capacity()),
		machine.WithBlank(def.BlankSymbol()),
	}
	m, err := machine.New(def.StateCount(), append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Name, err)
	}

	for _, s := range states {
		if err := m.AddState(s); err != nil {
			return nil, fmt.Errorf("%s: %w", def.Name, err)
		}
	}
	return m, nil
}

// Resolve converts the textual table into domain states without building a
// machine.
func Resolve(def *domain.Definition) ([]*domain.State, error) {
	fail := func(state, transition int, format string, args ...any) error {
		return &domain.DefinitionError{
			Machine:    def.Name,
			State:      state,
			Transition: transition,
			Msg:        fmt.Sprintf(format, args...),
		}
	}

	if len(def.States) == 0 {
		return nil, fail(-1, -1, "at least one state is required")
	}
	if len(def.Blank) > 1 {
		return nil, fail(-1, -1, "blank %q must be a single symbol", def.Blank)
	}
	if len(def.Sentinel) > 1 {
		return nil, fail(-1, -1, "sentinel %q must be a single symbol", def.Sentinel)
	}
	if len(def.Accept) > 1 {
		return nil, fail(-1, -1, "accept marker %q must be a single symbol", def.Accept)
	}
	if len(def.Reject) > 1 {
		return nil, fail(-1, -1, "reject marker %q must be a single symbol", def.Reject)
	}

	haltID := domain.StateID(len(def.States))
	ids := make(map[string]domain.StateID, len(def.States))
	for i := range def.States {
		name := StateName(def, i)
		if name == domain.HaltStateName {
			return nil, fail(i, -1, "%q is reserved for the halting state", name)
		}
		if _, dup := ids[name]; dup {
			return nil, fail(i, -1, "duplicate state name %q", name)
		}
		ids[name] = domain.StateID(i)
	}

	states := make([]*domain.State, 0, len(def.States))
	for i, sd := range def.States {
		s := domain.NewState(domain.StateID(i))
		seen := make(map[domain.Symbol]bool, len(sd.Transitions))

		for j, td := range sd.Transitions {
			read, err := ParseSymbol(td.Read)
			if err != nil {
				return nil, fail(i, j, "read: %v", err)
			}
			write, err := ParseSymbol(td.Write)
			if err != nil {
				return nil, fail(i, j, "write: %v", err)
			}
			move, err := ParseMove(td.Move)
			if err != nil {
				return nil, fail(i, j, "move: %v", err)
			}
			next, err := resolveNext(td.Next, ids, haltID)
			if err != nil {
				return nil, fail(i, j, "next: %v", err)
			}
			if seen[read] {
				return nil, fail(i, j, "second rule for read symbol %q", td.Read)
			}
			seen[read] = true

			s.AddTransition(domain.NewTransition(read, write, move, next))
		}
		states = append(states, s)
	}
	return states, nil
}

// StateName returns the declared name of state i, or "q<i>" when unnamed.
func StateName(def *domain.Definition, i int) string {
	if i == len(def.States) {
		return domain.HaltStateName
	}
	if name := strings.TrimSpace(def.States[i].Name); name != "" {
		return name
	}
	return "q" + strconv.Itoa(i)
}

// ParseSymbol accepts exactly one byte.
func ParseSymbol(s string) (domain.Symbol, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("symbol %q must be exactly one byte", s)
	}
	return domain.Symbol(s[0]), nil
}

// ParseMove accepts L/R, left/right and -1/+1 in any case.
func ParseMove(s string) (domain.Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left", "-1", "<":
		return domain.Left, nil
	case "r", "right", "1", "+1", ">":
		return domain.Right, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

func resolveNext(next string, ids map[string]domain.StateID, haltID domain.StateID) (domain.StateID, error) {
	name := strings.TrimSpace(next)
	if name == "" {
		return 0, fmt.Errorf("target state is required")
	}
	if name == domain.HaltStateName {
		return haltID, nil
	}
	if id, ok := ids[name]; ok {
		return id, nil
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && domain.StateID(n) <= haltID {
		return domain.StateID(n), nil
	}
	return 0, fmt.Errorf("unknown state %q", next)
}
