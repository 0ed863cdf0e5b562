package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"
	"github.com/bridgectl/bridgectl/internal/constants"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <command>...",
	Short: "Execute multiple debugger commands in one request",
	Long: `Execute multiple debugger commands in a single round trip.
Each argument is an action, optionally with a breakpoint location as
action:file:line (file may contain colons; the last segment is the line).`,
	Example: fmt.Sprintf(`  # Reset breakpoints and start a session
  - %s batch clearBreakpoints 'setBreakpoint:C:\Code\Program.cs:42' start

  # Stop at the first failure
  - %s batch --stop-on-error build start`,
		constants.ProjectName, constants.ProjectName),
	Run:  batchRun,
	Args: cobra.MinimumNArgs(1),
}

var stopOnErrorFlag bool

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolVar(&stopOnErrorFlag, "stop-on-error", false,
		"stop executing the batch at the first failed command")
}

func batchRun(cmd *cobra.Command, args []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	service := NewBatchService(c, NewOutputWrapper())
	if err = service.ExecuteBatch(cmd.Context(), args, stopOnErrorFlag); err != nil {
		output.Errorf("%s", err)
	}
}

// BatchService handles batch execution logic.
type BatchService struct {
	client client.Interface
	output OutputInterface
}

// NewBatchService creates a new BatchService with the provided dependencies.
func NewBatchService(apiClient client.Interface, outputter OutputInterface) *BatchService {
	return &BatchService{
		client: apiClient,
		output: outputter,
	}
}

// ExecuteBatch parses the command specs, sends them as one batch, and reports
// the per-command outcome.
func (s *BatchService) ExecuteBatch(ctx context.Context, specs []string, stopOnError bool) error {
	commands := make([]api.Command, 0, len(specs))
	for _, spec := range specs {
		command, err := parseCommandSpec(spec)
		if err != nil {
			return err
		}
		commands = append(commands, command)
	}

	s.output.Infof("Executing batch of %d commands", len(commands))

	result, err := s.client.ExecuteBatch(ctx, api.BatchRequest{
		Commands:    commands,
		StopOnError: stopOnError,
	})
	if err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}

	if result.OK {
		s.output.Successf("Batch succeeded: %d commands", result.SuccessCount)
	} else {
		s.output.Warningf("Batch finished: %d succeeded, %d failed",
			result.SuccessCount, result.FailureCount)
	}

	for i, cmdResult := range result.Results {
		if cmdResult.OK {
			continue
		}
		action := "?"
		if i < len(commands) {
			action = commands[i].Action
		}
		s.output.Errorf("  [%d] %s: %s", i+1, action, cmdResult.Error)
	}

	return nil
}

// parseCommandSpec parses an action[:file:line] argument. Windows paths keep
// their drive colon; only the final segment is taken as the line number.
func parseCommandSpec(spec string) (api.Command, error) {
	parts := strings.SplitN(spec, ":", 2)
	action := parts[0]
	if action == "" {
		return api.Command{}, fmt.Errorf("empty action in %q", spec)
	}

	if len(parts) == 1 {
		return api.Command{Action: action}, nil
	}

	rest := parts[1]
	idx := strings.LastIndex(rest, ":")
	if idx < 0 {
		return api.Command{}, fmt.Errorf("invalid command spec %q: expected action:file:line", spec)
	}

	file := rest[:idx]
	line, err := strconv.Atoi(rest[idx+1:])
	if err != nil || file == "" || line <= 0 {
		return api.Command{}, fmt.Errorf("invalid command spec %q: expected action:file:line", spec)
	}

	return api.Command{Action: action, File: file, Line: line}, nil
}
