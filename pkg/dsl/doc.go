/*
Package dsl provides a fluent builder for constructing transition tables in Go.

It is an alternative to YAML definitions for tests, generated tables and
embedding. Symbols and moves are plain strings and go through the same
checks as a parsed definition when Build is called.

Example usage:

	def, err := dsl.New("complement").
		Blank("B").
		Sentinel("E").
		State("skip").
		On("E", "E", dsl.R, "flip").
		State("flip").
		On("0", "1", dsl.R, "flip").
		On("1", "0", dsl.R, "flip").
		On("E", "E", dsl.L, dsl.Halt).
		Build()
*/
package dsl
