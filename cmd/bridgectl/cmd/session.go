package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"
	"github.com/bridgectl/bridgectl/internal/client/sessions"
	"github.com/bridgectl/bridgectl/internal/constants"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run and inspect reusable debugging sessions",
	Long: fmt.Sprintf(`Run, list, and show reusable debugging sessions.
Sessions are YAML files in ./%s or ~/%s bundling debugger commands.`,
		constants.SessionDirName, constants.SessionDirName),
}

var sessionRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a debugging session",
	Run:   sessionRunRun,
	Args:  cobra.ExactArgs(1),
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available sessions",
	Run:   sessionListRun,
	Args:  cobra.NoArgs,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the commands of a session without running it",
	Run:   sessionShowRun,
	Args:  cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionRunCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
}

func sessionRunRun(cmd *cobra.Command, args []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	service := NewSessionService(c, sessions.NewSessionLoader(), NewOutputWrapper())
	if err = service.RunSession(cmd.Context(), args[0]); err != nil {
		output.Errorf("%s", err)
	}
}

func sessionListRun(_ *cobra.Command, _ []string) {
	service := NewSessionService(nil, sessions.NewSessionLoader(), NewOutputWrapper())
	if err := service.ListSessions(); err != nil {
		output.Errorf("%s", err)
	}
}

func sessionShowRun(_ *cobra.Command, args []string) {
	service := NewSessionService(nil, sessions.NewSessionLoader(), NewOutputWrapper())
	if err := service.ShowSession(args[0]); err != nil {
		output.Errorf("%s", err)
	}
}

// SessionLoaderInterface abstracts session discovery and loading for testing.
type SessionLoaderInterface interface {
	ListSessions() ([]string, error)
	LoadSession(name string) (*api.Session, error)
}

// SessionService handles session execution and listing logic.
type SessionService struct {
	client client.Interface
	loader SessionLoaderInterface
	output OutputInterface
}

// NewSessionService creates a new SessionService with the provided dependencies.
func NewSessionService(
	apiClient client.Interface,
	loader SessionLoaderInterface,
	outputter OutputInterface,
) *SessionService {
	return &SessionService{
		client: apiClient,
		loader: loader,
		output: outputter,
	}
}

// RunSession loads a session by name and executes its commands as one batch.
func (s *SessionService) RunSession(ctx context.Context, name string) error {
	session, err := s.loader.LoadSession(name)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if session.Description != "" {
		s.output.Infof("%s: %s", s.output.Bold(name), session.Description)
	}
	s.output.Infof("Running %d commands", len(session.Commands))

	result, err := s.client.ExecuteBatch(ctx, session.BatchRequest())
	if err != nil {
		return fmt.Errorf("failed to run session: %w", err)
	}

	if result.OK {
		s.output.Successf("Session %s completed: %d commands", name, result.SuccessCount)
	} else {
		s.output.Warningf("Session %s finished: %d succeeded, %d failed",
			name, result.SuccessCount, result.FailureCount)
	}
	return nil
}

// ShowSession prints a session's description and commands without executing
// anything.
func (s *SessionService) ShowSession(name string) error {
	session, err := s.loader.LoadSession(name)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	s.output.Infof("%s", s.output.Bold(name))
	if session.Description != "" {
		s.output.KeyValue("Description", session.Description)
	}
	s.output.KeyValue("Stop on error", fmt.Sprintf("%t", session.StopOnError))
	s.output.KeyValue("Commands", fmt.Sprintf("%d", len(session.Commands)))
	s.output.Blank()

	rows := make([][]string, 0, len(session.Commands))
	for i, command := range session.Commands {
		location := ""
		if command.File != "" {
			location = fmt.Sprintf("%s:%d", command.File, command.Line)
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), command.Action, location})
	}
	s.output.Table([]string{"#", "Action", "Location"}, rows)
	return nil
}

// ListSessions prints the names of all discovered session files.
func (s *SessionService) ListSessions() error {
	names, err := s.loader.ListSessions()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(names) == 0 {
		s.output.Infof("No sessions found in ./%s or ~/%s",
			constants.SessionDirName, constants.SessionDirName)
		return nil
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		description := ""
		commands := ""
		if session, loadErr := s.loader.LoadSession(name); loadErr == nil {
			description = session.Description
			commands = fmt.Sprintf("%d", len(session.Commands))
		}
		rows = append(rows, []string{name, commands, description})
	}

	s.output.Table([]string{"Session", "Commands", "Description"}, rows)
	return nil
}
