package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventRunHalt  EventType = "run_halt"
	EventRunFail  EventType = "run_fail"
)

// StepEvent describes one applied transition. Head is the cell that was
// read and written, before the move.
type StepEvent struct {
	Step  int     `json:"step"`
	State StateID `json:"state"`
	Head  int     `json:"head"`
	Read  Symbol  `json:"read"`
	Write Symbol  `json:"write"`
	Move  Move    `json:"move"`
	Next  StateID `json:"next"`
}

// RunEvent marks the start or the end of an execution.
type RunEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	RunID     string        `json:"run_id"`
	Machine   string        `json:"machine"`
	Input     string        `json:"input"`
	Steps     int           `json:"steps,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Verdict   string        `json:"verdict,omitempty"`
	Cached    bool          `json:"cached,omitempty"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for execution observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnRunHalt  func(context.Context, *RunEvent)
	OnRunFail  func(context.Context, *RunEvent)
}
