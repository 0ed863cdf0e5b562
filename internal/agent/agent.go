package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/constants"

	"golang.org/x/sync/errgroup"
)

// OutputInterface is the subset of output operations the agent reports
// through, injected so tests can capture what the agent says.
type OutputInterface interface {
	Infof(format string, a ...any)
	Errorf(format string, a ...any)
	Successf(format string, a ...any)
	Warningf(format string, a ...any)
	KeyValue(key, value string)
	Blank()
}

// EventSource is a channel-based stream of bridge events. A live
// client.EventStream satisfies it.
type EventSource interface {
	Events() <-chan api.Event
	Done() <-chan struct{}
}

// Agent drives an automated debugging cycle against the bridge: build, check
// errors, set breakpoints, start, then react to pushed state changes.
type Agent struct {
	client   client.Interface
	analyzer *Analyzer
	output   OutputInterface
	logger   *slog.Logger

	// settleDelay is how long to wait after triggering a build before
	// asking the bridge for errors.
	settleDelay time.Duration
}

// New creates an Agent with the provided dependencies.
func New(apiClient client.Interface, outputter OutputInterface, logger *slog.Logger) *Agent {
	return &Agent{
		client:      apiClient,
		analyzer:    NewAnalyzer(),
		output:      outputter,
		logger:      logger,
		settleDelay: constants.BuildSettleDelay,
	}
}

// Run consumes events from the stream while executing one debugging cycle
// with the given breakpoints. It returns when the stream ends, the context is
// canceled, or the cycle fails.
func (a *Agent) Run(ctx context.Context, stream EventSource, breakpoints []api.Command) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.consumeEvents(ctx, stream)
	})

	g.Go(func() error {
		return a.RunCycle(ctx, breakpoints)
	})

	return g.Wait()
}

func (a *Agent) consumeEvents(ctx context.Context, stream EventSource) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stream.Done():
			return nil
		case event, ok := <-stream.Events():
			if !ok {
				return nil
			}
			a.HandleEvent(ctx, event)
		}
	}
}

// RunCycle executes one automated debugging cycle: trigger a build, wait for
// it to settle, then either analyze build errors or install the breakpoints
// and start a debug session.
func (a *Agent) RunCycle(ctx context.Context, breakpoints []api.Command) error {
	a.output.Infof("Starting automated debugging cycle")

	result, err := a.client.ExecuteCommand(ctx, api.Build())
	if err != nil {
		return fmt.Errorf("failed to trigger build: %w", err)
	}
	if result.OK {
		a.output.Successf("Build triggered")
	} else {
		a.output.Warningf("Build command rejected: %s", result.Error)
	}

	if err = a.sleep(ctx, a.settleDelay); err != nil {
		return err
	}

	errors, err := a.client.GetErrors(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch errors: %w", err)
	}

	if len(errors) > 0 {
		a.output.Warningf("Found %d errors, analyzing", len(errors))
		for i, item := range errors {
			if i >= constants.ErrorPreviewLimit {
				break
			}
			a.reportError(item)
		}
		return nil
	}

	a.output.Successf("No build errors found")
	a.output.Infof("Starting debug session")

	commands := make([]api.Command, 0, len(breakpoints)+2)
	commands = append(commands, api.ClearBreakpoints())
	commands = append(commands, breakpoints...)
	commands = append(commands, api.Start())

	batch, err := a.client.ExecuteBatch(ctx, api.BatchRequest{
		Commands:    commands,
		StopOnError: false,
	})
	if err != nil {
		return fmt.Errorf("failed to start debug session: %w", err)
	}

	a.output.Infof("Session batch: %d succeeded, %d failed", batch.SuccessCount, batch.FailureCount)
	return nil
}

// HandleEvent dispatches a single pushed bridge event.
func (a *Agent) HandleEvent(ctx context.Context, event api.Event) {
	switch event.Type {
	case api.EventConnected:
		a.output.Successf("Agent connected: %s", event.ConnectionID)

	case api.EventStateChange:
		if event.Snapshot == nil {
			a.logger.Debug("state change without snapshot")
			return
		}
		a.handleStateChange(ctx, *event.Snapshot)

	case api.EventPong:
		a.logger.Debug("heartbeat acknowledged")

	default:
		a.logger.Debug("ignoring event", "type", event.Type)
	}
}

func (a *Agent) handleStateChange(ctx context.Context, snapshot api.Snapshot) {
	a.output.Infof("State: %s", snapshot.Mode)

	switch snapshot.Mode {
	case api.ModeBreak:
		if snapshot.HasException() {
			a.handleException(snapshot)
		} else {
			a.output.Infof("Stopped at %s:%d", snapshot.File, snapshot.Line)
		}

	case api.ModeDesign:
		a.output.Infof("Session ended")
		if err := a.AnalyzeSession(ctx); err != nil {
			a.output.Errorf("session analysis failed: %v", err)
		}
	}
}

// handleException reports an exception break: the exception type, a preview
// of local variables, and any pattern-matched suggestion.
func (a *Agent) handleException(snapshot api.Snapshot) {
	a.output.Warningf("Exception: %s", snapshot.Exception)

	names := localNames(snapshot.Locals, constants.LocalsPreviewLimit)
	if len(names) > 0 {
		a.output.KeyValue("Locals", fmt.Sprintf("%v", names))
	}

	for _, suggestion := range a.analyzer.AnalyzeException(snapshot.Exception) {
		a.output.Infof("Suggestion: %s", suggestion)
	}
}

// AnalyzeSession summarizes a finished debug session: build errors with
// suggestions, a scan of the build output pane, and average API latency from
// the bridge's request log.
func (a *Agent) AnalyzeSession(ctx context.Context) error {
	a.output.Infof("Session analysis")

	errors, err := a.client.GetErrors(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch errors: %w", err)
	}
	if len(errors) > 0 {
		a.output.Warningf("%d errors/warnings found", len(errors))
		for i, item := range errors {
			if i >= constants.ErrorPreviewLimit {
				break
			}
			a.reportError(item)
		}
	}

	buildOutput, err := a.client.GetOutput(ctx, "Build")
	if err != nil {
		return fmt.Errorf("failed to fetch build output: %w", err)
	}
	if containsError(buildOutput) {
		a.output.Warningf("Build output contains errors (check /output/Build)")
	}

	logs, err := a.client.GetRequestLogs(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch request logs: %w", err)
	}
	if len(logs) > 0 {
		a.output.KeyValue("Average API response time", fmt.Sprintf("%.1fms", api.AverageDurationMs(logs)))
	}

	a.output.Successf("Analysis complete")
	return nil
}

func (a *Agent) reportError(item api.ErrorItem) {
	a.output.Infof("%s:%d  %s", item.File, item.Line, item.Description)
	suggestions := a.analyzer.AnalyzeError(item)
	for i, suggestion := range suggestions {
		if i >= 2 {
			break
		}
		a.output.Infof("Suggestion: %s", suggestion)
	}
}

func (a *Agent) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func containsError(text string) bool {
	return strings.Contains(strings.ToLower(text), "error")
}

// localNames returns up to limit sorted variable names from a locals map.
// Sorting keeps output stable across runs.
func localNames(locals map[string]any, limit int) []string {
	if len(locals) == 0 {
		return nil
	}
	names := make([]string, 0, len(locals))
	for name := range locals {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
