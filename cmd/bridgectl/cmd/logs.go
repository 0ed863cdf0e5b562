package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the bridge's request log",
	Long:  `Show recent requests the bridge has served, with timing`,
	Run:   logsRun,
}

func init() {
	rootCmd.AddCommand(logsCmd)
}

func logsRun(cmd *cobra.Command, _ []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	service := NewLogsService(c, NewOutputWrapper())
	if err = service.DisplayLogs(cmd.Context()); err != nil {
		output.Errorf("%s", err)
	}
}

// LogsService handles request-log display logic.
type LogsService struct {
	client client.Interface
	output OutputInterface
}

// NewLogsService creates a new LogsService with the provided dependencies.
func NewLogsService(apiClient client.Interface, outputter OutputInterface) *LogsService {
	return &LogsService{
		client: apiClient,
		output: outputter,
	}
}

// DisplayLogs fetches and displays the bridge's request log with the mean
// response time.
func (s *LogsService) DisplayLogs(ctx context.Context) error {
	logs, err := s.client.GetRequestLogs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get request logs: %w", err)
	}

	if len(logs) == 0 {
		s.output.Infof("No requests logged yet")
		return nil
	}

	rows := make([][]string, 0, len(logs))
	for _, entry := range logs {
		timestamp := ""
		if entry.Timestamp > 0 {
			timestamp = time.UnixMilli(entry.Timestamp).Format(time.TimeOnly)
		}
		rows = append(rows, []string{
			timestamp,
			entry.Method,
			entry.Path,
			strconv.Itoa(entry.Status),
			fmt.Sprintf("%.1fms", entry.DurationMs),
		})
	}

	s.output.Table([]string{"Time", "Method", "Path", "Status", "Duration"}, rows)
	s.output.Blank()
	s.output.KeyValue("Requests", strconv.Itoa(len(logs)))
	s.output.KeyValue("Average duration", fmt.Sprintf("%.1fms", api.AverageDurationMs(logs)))
	return nil
}
