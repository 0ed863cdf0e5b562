package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/client"
	"github.com/bridgectl/bridgectl/internal/constants"
)

// Poller re-fetches the bridge state on a fixed interval, a bounded number of
// times, and stops early when the debugger enters break mode. The event
// stream is the better way to watch for breaks; polling exists for callers
// that cannot hold a WebSocket open.
type Poller struct {
	client   client.Interface
	output   OutputInterface
	attempts int
	interval time.Duration
}

// NewPoller creates a Poller with the given bounds. Non-positive attempts or
// interval fall back to the defaults.
func NewPoller(apiClient client.Interface, outputter OutputInterface, attempts int, interval time.Duration) *Poller {
	if attempts <= 0 {
		attempts = constants.PollMaxAttempts
	}
	if interval <= 0 {
		interval = constants.PollInterval
	}
	return &Poller{
		client:   apiClient,
		output:   outputter,
		attempts: attempts,
		interval: interval,
	}
}

// WaitForBreak polls until the debugger reports break mode or the attempt
// budget is exhausted. It returns the last observed snapshot and whether a
// break was reached. The attempt bound holds even when the mode never
// changes.
func (p *Poller) WaitForBreak(ctx context.Context) (*api.Snapshot, bool, error) {
	var last *api.Snapshot

	for attempt := 1; attempt <= p.attempts; attempt++ {
		state, err := p.client.GetState(ctx)
		if err != nil {
			return last, false, fmt.Errorf("failed to fetch state: %w", err)
		}

		snapshot := state.Snapshot
		last = &snapshot
		p.output.Infof("[%d/%d] Mode: %s", attempt, p.attempts, snapshot.Mode)

		if snapshot.IsBreak() {
			return last, true, nil
		}

		if attempt == p.attempts {
			break
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return last, false, ctx.Err()
		case <-timer.C:
		}
	}

	return last, false, nil
}
