/*
Package domain contains the core data model of the turing engine.

It defines the tape alphabet, the transition rules and states that make up a
table, the typed execution errors, and the serializable Definition that
drivers load from disk. This package is pure and free of I/O.

# Key Entities

  - Symbol: one tape cell (a byte).
  - Transition: (read) -> (write, move, next).
  - State: deterministic dispatch from read symbol to Transition.
  - Definition: a table plus framing and verdict conventions.
  - Run: the record of a single execution.
*/
package domain
