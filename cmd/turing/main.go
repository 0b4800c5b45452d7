// Command turing runs deterministic single-tape Turing machines.
package main

func main() {
	Execute()
}
