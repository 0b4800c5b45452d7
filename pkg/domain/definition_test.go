package domain

import "testing"

func sampleDefinition() *Definition {
	return &Definition{
		Name:     "flip",
		Sentinel: "E",
		Accept:   "1",
		Reject:   "0",
		States: []StateDefinition{
			{
				Name: "q0",
				Transitions: []TransitionDefinition{
					{Read: "E", Write: "1", Move: "R", Next: HaltStateName},
				},
			},
		},
	}
}

func TestDefinition_Defaults(t *testing.T) {
	d := sampleDefinition()
	if d.StateCount() != 2 {
		t.Errorf("StateCount() = %d, want 2", d.StateCount())
	}
	if d.Capacity() != DefaultTapeCapacity {
		t.Errorf("Capacity() = %d, want %d", d.Capacity(), DefaultTapeCapacity)
	}
	if d.BlankSymbol() != DefaultBlank {
		t.Errorf("BlankSymbol() = %q", d.BlankSymbol())
	}

	d.TapeCapacity = 12
	d.Blank = "_"
	if d.Capacity() != 12 || d.BlankSymbol() != '_' {
		t.Errorf("explicit settings ignored: %d %q", d.Capacity(), d.BlankSymbol())
	}
}

func TestDefinition_Frame(t *testing.T) {
	d := sampleDefinition()
	if got := d.Frame("0011"); got != "E0011E" {
		t.Errorf("Frame() = %q", got)
	}
	if got := d.Frame(""); got != "EE" {
		t.Errorf("Frame(\"\") = %q", got)
	}

	d.Sentinel = ""
	if got := d.Frame("01"); got != "01" {
		t.Errorf("Frame() without sentinel = %q", got)
	}
}

func TestDefinition_Verdict(t *testing.T) {
	d := sampleDefinition()
	tests := map[string]string{
		"1BBB": VerdictAccept,
		"0BBB": VerdictReject,
		"EBBB": VerdictUnknown,
		"":     VerdictUnknown,
	}
	for out, want := range tests {
		if got := d.Verdict(out); got != want {
			t.Errorf("Verdict(%q) = %q, want %q", out, got, want)
		}
	}
}

func TestDefinition_Digest(t *testing.T) {
	a := sampleDefinition()
	b := sampleDefinition()
	b.Description = "prose does not matter"
	b.States[0].Comment = "neither do comments"

	if a.Digest() != b.Digest() {
		t.Error("digest should ignore description and comments")
	}

	// Explicit defaults are the same table.
	b.TapeCapacity = DefaultTapeCapacity
	b.Blank = "B"
	if a.Digest() != b.Digest() {
		t.Error("digest should normalise defaults")
	}

	b.States[0].Transitions[0].Write = "0"
	if a.Digest() == b.Digest() {
		t.Error("digest should change with the table")
	}

	if a.States[0].Comment != "" || b.States[0].Comment != "neither do comments" {
		t.Error("Digest must not mutate the definition")
	}
}

func TestRunKey(t *testing.T) {
	if RunKey("d", "01") == RunKey("d", "10") {
		t.Error("inputs must produce distinct keys")
	}
	if RunKey("d0", "1") == RunKey("d", "01") {
		t.Error("digest and input must not be ambiguous")
	}
	if RunKey("d", "01") != RunKey("d", "01") {
		t.Error("keys must be stable")
	}
}
