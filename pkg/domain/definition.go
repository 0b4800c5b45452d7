package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// HaltStateName is the reserved Next value that targets the halting slot.
const HaltStateName = "halt"

// DefaultTapeCapacity is used when a definition does not declare a capacity.
const DefaultTapeCapacity = 100

// Verdicts read from the first tape cell.
const (
	VerdictAccept  = "accept"
	VerdictReject  = "reject"
	VerdictUnknown = "unknown"
)

// Definition is the serializable form of a transition table plus the
// conventions a driver needs to feed and read it.
// States are registered in slice order; the halting id is len(States).
type Definition struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// Blank fills the tape past the input. Defaults to "B".
	Blank string `json:"blank,omitempty" yaml:"blank,omitempty" mapstructure:"blank"`

	// Sentinel, if set, is written on both sides of the input by Frame.
	Sentinel string `json:"sentinel,omitempty" yaml:"sentinel,omitempty" mapstructure:"sentinel"`

	// Accept and Reject are the result markers the table leaves in cell 0.
	Accept string `json:"accept,omitempty" yaml:"accept,omitempty" mapstructure:"accept"`
	Reject string `json:"reject,omitempty" yaml:"reject,omitempty" mapstructure:"reject"`

	TapeCapacity int `json:"tape_capacity,omitempty" yaml:"tape_capacity,omitempty" mapstructure:"tape_capacity"`

	States []StateDefinition `json:"states" yaml:"states" mapstructure:"states"`
}

// StateDefinition is one working state of a Definition.
type StateDefinition struct {
	Name        string                 `json:"name" yaml:"name" mapstructure:"name"`
	Comment     string                 `json:"comment,omitempty" yaml:"comment,omitempty" mapstructure:"comment"`
	Transitions []TransitionDefinition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// TransitionDefinition is the textual form of a Transition.
// Next is a state name, HaltStateName, or a numeric id.
type TransitionDefinition struct {
	Read  string `json:"read" yaml:"read" mapstructure:"read"`
	Write string `json:"write" yaml:"write" mapstructure:"write"`
	Move  string `json:"move" yaml:"move" mapstructure:"move"`
	Next  string `json:"next" yaml:"next" mapstructure:"next"`
}

// StateCount is the total number of declared states, halting slot included.
func (d *Definition) StateCount() int {
	return len(d.States) + 1
}

// Capacity returns the declared tape capacity or DefaultTapeCapacity.
func (d *Definition) Capacity() int {
	if d.TapeCapacity > 0 {
		return d.TapeCapacity
	}
	return DefaultTapeCapacity
}

// BlankSymbol returns the configured blank or DefaultBlank.
func (d *Definition) BlankSymbol() Symbol {
	if d.Blank != "" {
		return Symbol(d.Blank[0])
	}
	return DefaultBlank
}

// Frame wraps input in the sentinel, when one is configured.
func (d *Definition) Frame(input string) string {
	if d.Sentinel == "" {
		return input
	}
	return d.Sentinel + input + d.Sentinel
}

// Verdict interprets the first output cell against the result markers.
func (d *Definition) Verdict(output string) string {
	if output == "" {
		return VerdictUnknown
	}
	first := output[:1]
	switch {
	case d.Accept != "" && first == d.Accept:
		return VerdictAccept
	case d.Reject != "" && first == d.Reject:
		return VerdictReject
	default:
		return VerdictUnknown
	}
}

// Digest identifies the table's behaviour. Description and comments are
// excluded, so editing prose does not invalidate cached runs.
func (d *Definition) Digest() string {
	canon := *d
	canon.Description = ""
	canon.States = make([]StateDefinition, len(d.States))
	for i, s := range d.States {
		s.Comment = ""
		canon.States[i] = s
	}
	canon.TapeCapacity = d.Capacity()
	canon.Blank = d.BlankSymbol().String()

	// Marshal of plain strings, ints and slices cannot fail.
	data, _ := json.Marshal(canon)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
