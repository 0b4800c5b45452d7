/*
Package turing is a deterministic single-tape Turing machine executor.

A machine is a transition table over single-byte symbols: for each
(state, symbol) pair there is at most one rule saying what to write, which
way to move and which state comes next. Execution starts in state 0 with the
head on cell 0 and stops when the halting state (the last declared id) is
entered. The tape has a fixed capacity; running out of tape or out of rules
is an error, never a silent truncation.

# Layers

  - pkg/machine is the engine: tape, head, table and the execution loop. It performs no I/O.
  - pkg/domain holds the value types, the serializable Definition and the typed errors.
  - This package binds a Definition to a compiled machine and adds framing, verdicts,
    lifecycle hooks, logging and run memoisation through a ports.RunStore.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/turing"
		"github.com/aretw0/turing/pkg/library"
	)

	func main() {
		eng, err := turing.New(library.MustGet(library.EqualRuns))
		if err != nil {
			log.Fatal(err)
		}

		run, err := eng.Execute(context.Background(), "0011")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(run.Verdict) // accept
	}

Because execution is deterministic, a finished run is fully described by
the table digest and the tape, and WithStore can serve repeated inputs
without executing them again.
*/
package turing
