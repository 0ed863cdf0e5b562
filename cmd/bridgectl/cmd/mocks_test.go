package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bridgectl/bridgectl/internal/api"
)

// mockClientInterface is a manual mock for testing
type mockClientInterface struct {
	getStateFunc       func(ctx context.Context) (*api.StateResponse, error)
	executeCommandFunc func(ctx context.Context, cmd api.Command) (*api.CommandResult, error)
	executeBatchFunc   func(ctx context.Context, req api.BatchRequest) (*api.BatchResult, error)
	getErrorsFunc      func(ctx context.Context) ([]api.ErrorItem, error)
	getOutputFunc      func(ctx context.Context, pane string) (string, error)
	getRequestLogsFunc func(ctx context.Context) ([]api.RequestLog, error)
	getMetricsFunc     func(ctx context.Context) (*api.Metrics, error)
}

func (m *mockClientInterface) GetState(ctx context.Context) (*api.StateResponse, error) {
	if m.getStateFunc != nil {
		return m.getStateFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockClientInterface) ExecuteCommand(ctx context.Context, cmd api.Command) (*api.CommandResult, error) {
	if m.executeCommandFunc != nil {
		return m.executeCommandFunc(ctx, cmd)
	}
	return nil, errors.New("not implemented")
}

func (m *mockClientInterface) ExecuteBatch(ctx context.Context, req api.BatchRequest) (*api.BatchResult, error) {
	if m.executeBatchFunc != nil {
		return m.executeBatchFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockClientInterface) GetErrors(ctx context.Context) ([]api.ErrorItem, error) {
	if m.getErrorsFunc != nil {
		return m.getErrorsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockClientInterface) GetOutput(ctx context.Context, pane string) (string, error) {
	if m.getOutputFunc != nil {
		return m.getOutputFunc(ctx, pane)
	}
	return "", errors.New("not implemented")
}

func (m *mockClientInterface) GetRequestLogs(ctx context.Context) ([]api.RequestLog, error) {
	if m.getRequestLogsFunc != nil {
		return m.getRequestLogsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockClientInterface) GetMetrics(ctx context.Context) (*api.Metrics, error) {
	if m.getMetricsFunc != nil {
		return m.getMetricsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// mockOutput records all output calls for assertions.
type mockOutput struct {
	lines       []string
	tables      [][][]string
	promptReply map[string]string
}

func newMockOutput() *mockOutput {
	return &mockOutput{promptReply: map[string]string{}}
}

func (m *mockOutput) record(format string, a ...any) {
	m.lines = append(m.lines, fmt.Sprintf(format, a...))
}

func (m *mockOutput) Infof(format string, a ...any)    { m.record(format, a...) }
func (m *mockOutput) Errorf(format string, a ...any)   { m.record(format, a...) }
func (m *mockOutput) Successf(format string, a ...any) { m.record(format, a...) }
func (m *mockOutput) Warningf(format string, a ...any) { m.record(format, a...) }
func (m *mockOutput) KeyValue(key, value string)       { m.record("%s: %s", key, value) }
func (m *mockOutput) Blank()                           {}
func (m *mockOutput) Bold(text string) string          { return text }
func (m *mockOutput) Cyan(text string) string          { return text }

func (m *mockOutput) Table(_ []string, rows [][]string) {
	m.tables = append(m.tables, rows)
}

// Prompt answers with the reply whose key matches the prompt text. Longer
// keys win so "API key header" takes precedence over "API key".
func (m *mockOutput) Prompt(prompt string) string {
	keys := make([]string, 0, len(m.promptReply))
	for key := range m.promptReply {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	for _, key := range keys {
		if strings.Contains(prompt, key) {
			return m.promptReply[key]
		}
	}
	return ""
}

func (m *mockOutput) contains(substr string) bool {
	for _, line := range m.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
