package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"
	"github.com/bridgectl/bridgectl/internal/constants"

	"github.com/spf13/cobra"
)

var knownActions = []string{
	api.ActionSetBreakpoint,
	api.ActionClearBreakpoints,
	api.ActionStart,
	api.ActionStop,
	api.ActionBuild,
}

var execCmd = &cobra.Command{
	Use:   "exec <action>",
	Short: "Execute a single debugger command",
	Long: fmt.Sprintf(`Execute a single debugger command against the bridge.
Known actions: %v`, knownActions),
	Example: fmt.Sprintf(`  # Trigger a build
  - %s exec build

  # Set a breakpoint
  - %s exec setBreakpoint --file 'C:\Code\Program.cs' --line 42

  # Start a debug session
  - %s exec start`,
		constants.ProjectName, constants.ProjectName, constants.ProjectName),
	Run:  execRun,
	Args: cobra.ExactArgs(1),
}

var (
	execFileFlag string
	execLineFlag int
)

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().StringVar(&execFileFlag, "file", "", "source file for breakpoint actions")
	execCmd.Flags().IntVar(&execLineFlag, "line", 0, "line number for breakpoint actions")
}

func execRun(cmd *cobra.Command, args []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	service := NewExecService(c, NewOutputWrapper())
	if err = service.Execute(cmd.Context(), args[0], execFileFlag, execLineFlag); err != nil {
		output.Errorf("%s", err)
	}
}

// ExecService handles single-command execution logic.
type ExecService struct {
	client client.Interface
	output OutputInterface
}

// NewExecService creates a new ExecService with the provided dependencies.
func NewExecService(apiClient client.Interface, outputter OutputInterface) *ExecService {
	return &ExecService{
		client: apiClient,
		output: outputter,
	}
}

// Execute sends one command to the bridge and reports the result. Unknown
// actions are rejected locally before any request is made.
func (s *ExecService) Execute(ctx context.Context, action, file string, line int) error {
	if !slices.Contains(knownActions, action) {
		return fmt.Errorf("unknown action %q (known actions: %v)", action, knownActions)
	}
	if action == api.ActionSetBreakpoint && (file == "" || line <= 0) {
		return fmt.Errorf("setBreakpoint requires --file and --line")
	}

	s.output.Infof("Executing %s", s.output.Bold(action))

	result, err := s.client.ExecuteCommand(ctx, api.Command{Action: action, File: file, Line: line})
	if err != nil {
		return fmt.Errorf("failed to execute command: %w", err)
	}

	if !result.OK {
		s.output.Errorf("Command failed: %s", result.Error)
		return nil
	}

	s.output.Successf("Command succeeded")
	return nil
}
