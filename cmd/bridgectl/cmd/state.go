package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"
	"github.com/bridgectl/bridgectl/internal/constants"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the current debugger state",
	Long:  `Show the debugger's current execution mode, location, and break context`,
	Run:   stateRun,
}

func init() {
	rootCmd.AddCommand(stateCmd)
}

func stateRun(cmd *cobra.Command, _ []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	service := NewStateService(c, NewOutputWrapper())
	if err = service.ShowState(cmd.Context()); err != nil {
		output.Errorf("%s", err)
	}
}

// StateService handles state display logic.
type StateService struct {
	client client.Interface
	output OutputInterface
}

// NewStateService creates a new StateService with the provided dependencies.
func NewStateService(apiClient client.Interface, outputter OutputInterface) *StateService {
	return &StateService{
		client: apiClient,
		output: outputter,
	}
}

// ShowState fetches and displays the current snapshot.
func (s *StateService) ShowState(ctx context.Context) error {
	state, err := s.client.GetState(ctx)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}

	snapshot := state.Snapshot
	s.output.KeyValue("Mode", output.ModeBadge(snapshot.Mode))

	if snapshot.File != "" {
		s.output.KeyValue("Location", fmt.Sprintf("%s:%d", snapshot.File, snapshot.Line))
	}
	if snapshot.HasException() {
		s.output.KeyValue("Exception", snapshot.Exception)
	}
	if snapshot.Notes != "" {
		s.output.KeyValue("Notes", snapshot.Notes)
	}

	if len(snapshot.Locals) > 0 {
		s.output.Blank()
		s.output.Infof("Locals:")
		s.displayLocals(snapshot.Locals)
	}

	if len(snapshot.Stack) > 0 {
		s.output.Blank()
		s.output.Infof("Stack (top %d):", min(len(snapshot.Stack), constants.StackPreviewLimit))
		for i, frame := range snapshot.Stack {
			if i >= constants.StackPreviewLimit {
				s.output.Infof("  ... %d more frames", len(snapshot.Stack)-constants.StackPreviewLimit)
				break
			}
			s.output.Infof("  %s", frame)
		}
	}

	return nil
}

// displayLocals renders up to the preview limit of local variables, sorted by
// name so repeated calls line up.
func (s *StateService) displayLocals(locals map[string]any) {
	names := make([]string, 0, len(locals))
	for name := range locals {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for i, name := range names {
		if i >= constants.LocalsPreviewLimit {
			break
		}
		rows = append(rows, []string{name, formatLocalValue(locals[name])})
	}

	s.output.Table([]string{"Variable", "Value"}, rows)
	if len(names) > constants.LocalsPreviewLimit {
		s.output.Infof("  ... %d more variables", len(names)-constants.LocalsPreviewLimit)
	}
}

func formatLocalValue(v any) string {
	if v == nil {
		return "null"
	}
	text := fmt.Sprintf("%v", v)
	return strings.TrimSpace(text)
}
