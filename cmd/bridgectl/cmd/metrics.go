package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/client/output"

	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show bridge performance metrics",
	Run:   metricsRun,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func metricsRun(cmd *cobra.Command, _ []string) {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		output.Errorf("failed to load configuration: %v", err)
		return
	}

	c := client.New(cfg, slog.Default())
	service := NewMetricsService(c, NewOutputWrapper())
	if err = service.DisplayMetrics(cmd.Context()); err != nil {
		output.Errorf("%s", err)
	}
}

// MetricsService handles metrics display logic.
type MetricsService struct {
	client client.Interface
	output OutputInterface
}

// NewMetricsService creates a new MetricsService with the provided dependencies.
func NewMetricsService(apiClient client.Interface, outputter OutputInterface) *MetricsService {
	return &MetricsService{
		client: apiClient,
		output: outputter,
	}
}

// DisplayMetrics fetches and displays the bridge's performance summary.
func (s *MetricsService) DisplayMetrics(ctx context.Context) error {
	metrics, err := s.client.GetMetrics(ctx)
	if err != nil {
		return fmt.Errorf("failed to get metrics: %w", err)
	}

	s.output.KeyValue("Uptime", metrics.Uptime)
	s.output.KeyValue("Total requests", strconv.FormatInt(metrics.TotalRequests, 10))
	s.output.KeyValue("Average response time", fmt.Sprintf("%.1fms", metrics.AverageResponseTimeMs))
	s.output.KeyValue("Active WebSocket connections", strconv.Itoa(metrics.ActiveWebSocketConnections))
	return nil
}
