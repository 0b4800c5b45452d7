package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Run is the record of one Execute call.
type Run struct {
	ID       string        `json:"id"`
	Key      string        `json:"key"`
	Machine  string        `json:"machine"`
	Input    string        `json:"input"`
	Tape     string        `json:"tape"`
	Output   string        `json:"output,omitempty"`
	Verdict  string        `json:"verdict,omitempty"`
	Steps    int           `json:"steps"`
	Head     int           `json:"head"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`

	// ErrKind is one of the Kind constants; Error is the message.
	ErrKind string `json:"error_kind,omitempty"`
	Error   string `json:"error,omitempty"`

	// Cached is set when the record was served from a store.
	Cached bool `json:"cached,omitempty"`
}

// Failed reports whether the run ended with an error.
func (r *Run) Failed() bool {
	return r.ErrKind != ""
}

// RunKey derives the store key of (table, input). Execution is
// deterministic, so equal keys always have equal outcomes.
func RunKey(digest, input string) string {
	h := sha256.New()
	h.Write([]byte(digest))
	h.Write([]byte{0})
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
