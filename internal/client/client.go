// Package client provides HTTP client functionality for the debugger bridge.
// It handles authentication, request/response serialization, and error handling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/config"
	"github.com/bridgectl/bridgectl/internal/constants"
	"github.com/bridgectl/bridgectl/internal/logger"
)

// Client provides a generic HTTP client for bridge operations
type Client struct {
	config *config.Config
	logger *slog.Logger
}

// New creates a new bridge client
func New(cfg *config.Config, log *slog.Logger) *Client {
	return &Client{
		config: cfg,
		logger: log,
	}
}

// Request represents a bridge API request
type Request struct {
	Method string
	Path   string
	Body   any
}

// Response represents a bridge API response
type Response struct {
	StatusCode int
	Body       []byte
}

// buildURL constructs the full bridge URL from a path
func (c *Client) buildURL(path string) (string, error) {
	apiURL, err := url.JoinPath(c.config.Endpoint, path)
	if err != nil {
		return "", err
	}
	return apiURL, nil
}

// Do makes an HTTP request to the bridge. The API key is sent in the header
// named by the discovery record's keyHeader.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var bodyReader io.Reader
	var bodySize int
	if req.Body != nil {
		jsonData, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodySize = len(jsonData)
		bodyReader = bytes.NewBuffer(jsonData)
	}

	apiURL, err := c.buildURL(req.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid bridge endpoint: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, apiURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set(constants.ContentTypeHeader, "application/json")
	httpReq.Header.Set(c.config.KeyHeader, c.config.APIKey)

	logArgs := []any{
		"operation", "HTTP.Request",
		"method", req.Method,
		"url", apiURL,
		"hasBody", req.Body != nil,
		"bodySize", bodySize,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	c.logger.Debug("calling bridge", logArgs...)

	httpClient := &http.Client{}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("received bridge response",
		"status", resp.StatusCode,
		"bodySize", len(body),
		"method", req.Method,
		"url", apiURL)

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// DoJSON makes a request and unmarshals the response into the provided interface
func (c *Client) DoJSON(ctx context.Context, req Request, result any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if resp.StatusCode >= constants.HTTPStatusBadRequest {
		var errorResp api.ErrorResponse
		if err = json.Unmarshal(resp.Body, &errorResp); err != nil {
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(resp.Body))
		}
		return fmt.Errorf("[%d] %s: %s", resp.StatusCode, errorResp.Error, errorResp.Details)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err = json.Unmarshal(resp.Body, result); err != nil {
		c.logger.Debug("response body", "body", string(resp.Body))
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// GetState fetches the current execution-state snapshot
func (c *Client) GetState(ctx context.Context) (*api.StateResponse, error) {
	var resp api.StateResponse
	err := c.DoJSON(ctx, Request{
		Method: "GET",
		Path:   "/state",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExecuteCommand sends a single debugger command
func (c *Client) ExecuteCommand(ctx context.Context, cmd api.Command) (*api.CommandResult, error) {
	var resp api.CommandResult
	err := c.DoJSON(ctx, Request{
		Method: "POST",
		Path:   "/command",
		Body:   cmd,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExecuteBatch sends multiple debugger commands in a single request.
// The bridge stops or continues on per-command failure per req.StopOnError.
func (c *Client) ExecuteBatch(ctx context.Context, req api.BatchRequest) (*api.BatchResult, error) {
	var resp api.BatchResult
	err := c.DoJSON(ctx, Request{
		Method: "POST",
		Path:   "/batch",
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetErrors fetches the current build/compilation error list
func (c *Client) GetErrors(ctx context.Context) ([]api.ErrorItem, error) {
	var resp []api.ErrorItem
	err := c.DoJSON(ctx, Request{
		Method: "GET",
		Path:   "/errors",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetOutput fetches the raw text content of an output pane (e.g. "Build").
// An unknown pane yields an empty string without an error, matching the
// bridge's 404 behavior for panes that have produced no output.
func (c *Client) GetOutput(ctx context.Context, pane string) (string, error) {
	resp, err := c.Do(ctx, Request{
		Method: "GET",
		Path:   fmt.Sprintf("/output/%s", url.PathEscape(pane)),
	})
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode,
			strings.TrimSpace(string(resp.Body)))
	}

	return string(resp.Body), nil
}

// GetRequestLogs fetches recent request-log entries
func (c *Client) GetRequestLogs(ctx context.Context) ([]api.RequestLog, error) {
	var resp []api.RequestLog
	err := c.DoJSON(ctx, Request{
		Method: "GET",
		Path:   "/logs",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetMetrics fetches the bridge's performance metrics
func (c *Client) GetMetrics(ctx context.Context) (*api.Metrics, error) {
	var resp api.Metrics
	err := c.DoJSON(ctx, Request{
		Method: "GET",
		Path:   "/metrics",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
