// Package bridgesim implements an in-process debugger bridge with the same
// HTTP and WebSocket surface as the real service. It backs integration tests
// and local development when no debugger is attached.
package bridgesim

import (
	"fmt"
	"sync"
	"time"

	"github.com/bridgectl/bridgectl/internal/api"
	apperrors "github.com/bridgectl/bridgectl/internal/errors"
)

type breakpoint struct {
	file string
	line int
}

// Simulator holds the simulated debugger state: the current mode, installed
// breakpoints, seeded build errors, and output panes. All methods are safe
// for concurrent use.
type Simulator struct {
	mu          sync.RWMutex
	mode        api.Mode
	file        string
	line        int
	exception   string
	locals      map[string]any
	stack       []string
	breakpoints []breakpoint
	errors      []api.ErrorItem
	panes       map[string]string

	// onStateChange is invoked with the new snapshot after every mode
	// transition, outside the state lock.
	onStateChange func(api.Snapshot)
}

// NewSimulator creates a simulator in design mode with no breakpoints.
func NewSimulator() *Simulator {
	return &Simulator{
		mode:  api.ModeDesign,
		panes: make(map[string]string),
	}
}

// OnStateChange registers the callback invoked after each mode transition.
func (s *Simulator) OnStateChange(fn func(api.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChange = fn
}

// Snapshot returns the current execution state.
func (s *Simulator) Snapshot() api.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Simulator) snapshotLocked() api.Snapshot {
	snapshot := api.Snapshot{
		Mode:      s.mode,
		File:      s.file,
		Line:      s.line,
		Exception: s.exception,
		Stack:     s.stack,
	}
	if s.locals != nil {
		snapshot.Locals = make(map[string]any, len(s.locals))
		for k, v := range s.locals {
			snapshot.Locals[k] = v
		}
	}
	return snapshot
}

// Apply executes a single debugger command and returns its result. Unknown
// actions yield a failed result, not a transport error.
func (s *Simulator) Apply(cmd api.Command) api.CommandResult {
	s.mu.Lock()

	var result api.CommandResult
	var changed bool

	switch cmd.Action {
	case api.ActionSetBreakpoint:
		if cmd.File == "" || cmd.Line <= 0 {
			result = api.CommandResult{Error: "setBreakpoint requires file and line"}
			break
		}
		s.breakpoints = append(s.breakpoints, breakpoint{file: cmd.File, line: cmd.Line})
		result = api.CommandResult{OK: true}

	case api.ActionClearBreakpoints:
		s.breakpoints = nil
		result = api.CommandResult{OK: true}

	case api.ActionStart:
		if s.mode != api.ModeDesign {
			result = api.CommandResult{Error: "debug session already active"}
			break
		}
		changed = s.startLocked()
		result = api.CommandResult{OK: true}

	case api.ActionStop:
		if s.mode == api.ModeDesign {
			result = api.CommandResult{Error: "no debug session active"}
			break
		}
		s.mode = api.ModeDesign
		s.file, s.line, s.exception, s.locals, s.stack = "", 0, "", nil, nil
		changed = true
		result = api.CommandResult{OK: true}

	case api.ActionBuild:
		s.buildLocked()
		result = api.CommandResult{OK: true}

	default:
		result = api.CommandResult{Error: apperrors.ErrUnknownAction(cmd.Action).Message}
	}

	var snapshot api.Snapshot
	var notify func(api.Snapshot)
	if changed {
		snapshot = s.snapshotLocked()
		notify = s.onStateChange
	}
	s.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
	return result
}

// startLocked enters run mode, or break mode at the first breakpoint when any
// are installed. Returns true; starting always changes state.
func (s *Simulator) startLocked() bool {
	if len(s.breakpoints) > 0 {
		bp := s.breakpoints[0]
		s.mode = api.ModeBreak
		s.file = bp.file
		s.line = bp.line
		s.stack = []string{fmt.Sprintf("%s:%d", bp.file, bp.line)}
		s.locals = map[string]any{}
		return true
	}
	s.mode = api.ModeRun
	return true
}

func (s *Simulator) buildLocked() {
	timestamp := time.Now().Format(time.TimeOnly)
	status := "Build succeeded."
	if len(s.errors) > 0 {
		status = fmt.Sprintf("Build FAILED: %d Error(s)", len(s.errors))
	}
	s.panes["Build"] = fmt.Sprintf("[%s] Build started...\n%s\n", timestamp, status)
}

// ApplyBatch executes commands in order. With stopOnError set, execution
// halts at the first failed command; otherwise every command runs.
func (s *Simulator) ApplyBatch(req api.BatchRequest) api.BatchResult {
	result := api.BatchResult{OK: true}

	for _, cmd := range req.Commands {
		cmdResult := s.Apply(cmd)
		result.Results = append(result.Results, cmdResult)

		if cmdResult.OK {
			result.SuccessCount++
			continue
		}

		result.FailureCount++
		result.OK = false
		if req.StopOnError {
			break
		}
	}

	return result
}

// RaiseException forces a break at the given location with an exception, as
// the real bridge does when the debuggee faults.
func (s *Simulator) RaiseException(exception, file string, line int, locals map[string]any) {
	s.mu.Lock()
	s.mode = api.ModeBreak
	s.file = file
	s.line = line
	s.exception = exception
	s.locals = locals
	s.stack = []string{fmt.Sprintf("%s:%d", file, line)}
	snapshot := s.snapshotLocked()
	notify := s.onStateChange
	s.mu.Unlock()

	if notify != nil {
		notify(snapshot)
	}
}

// Errors returns the seeded build errors. Never nil, so the JSON encoding is
// always an array.
func (s *Simulator) Errors() []api.ErrorItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]api.ErrorItem, len(s.errors))
	copy(items, s.errors)
	return items
}

// SetErrors replaces the seeded build errors.
func (s *Simulator) SetErrors(items []api.ErrorItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = items
}

// Pane returns the content of an output pane. A missing pane is reported via
// an error so the HTTP layer can answer 404.
func (s *Simulator) Pane(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.panes[name]
	if !ok {
		return "", apperrors.ErrPaneNotFound(name)
	}
	return content, nil
}

// SetPane seeds an output pane.
func (s *Simulator) SetPane(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panes[name] = content
}

// BreakpointCount returns the number of installed breakpoints.
func (s *Simulator) BreakpointCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.breakpoints)
}
