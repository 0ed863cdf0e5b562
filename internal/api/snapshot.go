// Package api defines the JSON types exchanged with the debugger bridge.
package api

// Mode represents the debugger execution mode reported by the bridge.
type Mode string

const (
	// ModeRun indicates the debuggee is executing.
	ModeRun Mode = "Run"
	// ModeBreak indicates execution is paused at a breakpoint or exception.
	ModeBreak Mode = "Break"
	// ModeDesign indicates no debug session is active.
	ModeDesign Mode = "Design"
)

// Snapshot is the bridge's view of the current execution state.
// Optional fields are only populated in Break mode.
type Snapshot struct {
	Mode      Mode           `json:"mode"`
	File      string         `json:"file,omitempty"`
	Line      int            `json:"line,omitempty"`
	Exception string         `json:"exception,omitempty"`
	Locals    map[string]any `json:"locals,omitempty"`
	Stack     []string       `json:"stack,omitempty"`
	Notes     string         `json:"notes,omitempty"`
}

// StateResponse is the envelope returned by GET /state.
type StateResponse struct {
	Snapshot Snapshot `json:"snapshot"`
}

// IsBreak reports whether the snapshot is paused at a breakpoint.
func (s *Snapshot) IsBreak() bool {
	return s.Mode == ModeBreak
}

// HasException reports whether the snapshot carries an exception.
func (s *Snapshot) HasException() bool {
	return s.Exception != ""
}
