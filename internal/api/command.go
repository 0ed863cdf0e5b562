package api

// Command action names understood by the bridge.
const (
	ActionSetBreakpoint    = "setBreakpoint"
	ActionClearBreakpoints = "clearBreakpoints"
	ActionStart            = "start"
	ActionStop             = "stop"
	ActionBuild            = "build"
)

// Command is a single debugger command sent to POST /command or bundled into
// a batch. File and Line are only meaningful for breakpoint actions.
type Command struct {
	Action string `json:"action"`
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
}

// SetBreakpoint builds a setBreakpoint command for the given location.
func SetBreakpoint(file string, line int) Command {
	return Command{Action: ActionSetBreakpoint, File: file, Line: line}
}

// ClearBreakpoints builds a clearBreakpoints command.
func ClearBreakpoints() Command {
	return Command{Action: ActionClearBreakpoints}
}

// Start builds a start command.
func Start() Command {
	return Command{Action: ActionStart}
}

// Stop builds a stop command.
func Stop() Command {
	return Command{Action: ActionStop}
}

// Build builds a build command.
func Build() Command {
	return Command{Action: ActionBuild}
}

// CommandResult is the per-command result returned by the bridge.
type CommandResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BatchRequest bundles multiple commands into a single POST /batch request.
type BatchRequest struct {
	Commands    []Command `json:"commands"`
	StopOnError bool      `json:"stopOnError"`
}

// BatchResult summarizes a batch execution. The bridge stops or continues on
// per-command failure according to the request's StopOnError.
type BatchResult struct {
	OK           bool            `json:"ok"`
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Results      []CommandResult `json:"results,omitempty"`
}
