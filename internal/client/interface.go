// Package client provides HTTP client functionality for the debugger bridge.
package client

import (
	"context"

	"github.com/bridgectl/bridgectl/internal/api"
)

// Interface defines the bridge client interface for dependency injection and testing
type Interface interface {
	GetState(ctx context.Context) (*api.StateResponse, error)
	ExecuteCommand(ctx context.Context, cmd api.Command) (*api.CommandResult, error)
	ExecuteBatch(ctx context.Context, req api.BatchRequest) (*api.BatchResult, error)
	GetErrors(ctx context.Context) ([]api.ErrorItem, error)
	GetOutput(ctx context.Context, pane string) (string, error)
	GetRequestLogs(ctx context.Context) ([]api.RequestLog, error)
	GetMetrics(ctx context.Context) (*api.Metrics, error)
}

// Compile-time check to ensure Client implements Interface
var _ Interface = (*Client)(nil)
