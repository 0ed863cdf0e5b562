package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bridgectl/bridgectl/internal/agent"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"

	"github.com/spf13/cobra"
)

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "List current build errors",
	Long:  `List the build and compilation errors the bridge currently reports`,
	Run:   errorsRun,
}

var analyzeFlag bool

func init() {
	rootCmd.AddCommand(errorsCmd)

	errorsCmd.Flags().BoolVar(&analyzeFlag, "analyze", false,
		"match each error against known patterns and print fix suggestions")
}

func errorsRun(cmd *cobra.Command, _ []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	service := NewErrorsService(c, NewOutputWrapper())
	if err = service.ListErrors(cmd.Context(), analyzeFlag); err != nil {
		output.Errorf("%s", err)
	}
}

// ErrorsService handles error listing and analysis logic.
type ErrorsService struct {
	client   client.Interface
	analyzer *agent.Analyzer
	output   OutputInterface
}

// NewErrorsService creates a new ErrorsService with the provided dependencies.
func NewErrorsService(apiClient client.Interface, outputter OutputInterface) *ErrorsService {
	return &ErrorsService{
		client:   apiClient,
		analyzer: agent.NewAnalyzer(),
		output:   outputter,
	}
}

// ListErrors fetches and displays current build errors, optionally with
// pattern-matched suggestions.
func (s *ErrorsService) ListErrors(ctx context.Context, analyze bool) error {
	items, err := s.client.GetErrors(ctx)
	if err != nil {
		return fmt.Errorf("failed to get errors: %w", err)
	}

	if len(items) == 0 {
		s.output.Successf("No build errors")
		return nil
	}

	s.output.Warningf("%d errors found", len(items))

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d", item.File, item.Line),
			item.Description,
		})
	}
	s.output.Table([]string{"Location", "Description"}, rows)

	if !analyze {
		return nil
	}

	s.output.Blank()
	for _, item := range items {
		suggestions := s.analyzer.AnalyzeError(item)
		if len(suggestions) == 0 {
			continue
		}
		s.output.Infof("%s:%d", item.File, item.Line)
		for _, suggestion := range suggestions {
			s.output.Infof("  %s", suggestion)
		}
	}

	return nil
}
