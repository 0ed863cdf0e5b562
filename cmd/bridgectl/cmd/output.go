package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"

	"github.com/spf13/cobra"
)

var outputCmd = &cobra.Command{
	Use:   "output [pane]",
	Short: "Show an output pane",
	Long:  `Show the raw text content of a bridge output pane (default: Build)`,
	Run:   outputRun,
	Args:  cobra.MaximumNArgs(1),
}

func init() {
	rootCmd.AddCommand(outputCmd)
}

func outputRun(cmd *cobra.Command, args []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	pane := "Build"
	if len(args) > 0 {
		pane = args[0]
	}

	c := client.New(cfg, slog.Default())
	service := NewOutputService(c, NewOutputWrapper())
	if err = service.ShowPane(cmd.Context(), pane); err != nil {
		output.Errorf("%s", err)
	}
}

// OutputService handles output pane display logic.
type OutputService struct {
	client client.Interface
	output OutputInterface
	print  func(text string)
}

// NewOutputService creates a new OutputService with the provided dependencies.
func NewOutputService(apiClient client.Interface, outputter OutputInterface) *OutputService {
	return &OutputService{
		client: apiClient,
		output: outputter,
		print:  func(text string) { output.Println(text) },
	}
}

// ShowPane fetches a pane and prints its raw content. An absent pane is
// reported, not treated as a failure.
func (s *OutputService) ShowPane(ctx context.Context, pane string) error {
	content, err := s.client.GetOutput(ctx, pane)
	if err != nil {
		return fmt.Errorf("failed to get output pane: %w", err)
	}

	if content == "" {
		s.output.Infof("Output pane %s is empty or does not exist", s.output.Bold(pane))
		return nil
	}

	s.print(content)
	return nil
}
