/*
Package machine implements the execution engine: a fixed tape, a head, and
a loop that applies one transition per step until the halting state.

A machine is declared with its total state count N. States 0..N-2 are
registered with AddState in order; id N-1 is the halting state and has no
transition table. Reaching it is the only way Execute succeeds.

	m, _ := machine.New(2, machine.WithTapeCapacity(8))
	s := domain.NewState(0)
	s.AddTransition(domain.NewTransition('a', 'b', domain.Right, 1))
	_ = m.AddState(s)
	out, err := m.ExecuteString("a") // "bBBBBBBB"

The head may address cells [0, capacity). A move outside that range fails
with a TapeOverrunError before anything is written.
*/
package machine
