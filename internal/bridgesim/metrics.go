package bridgesim

import (
	"sync"
	"time"

	"github.com/bridgectl/bridgectl/internal/api"
)

const requestLogCapacity = 200

// recorder accumulates per-request timing for GET /logs and GET /metrics.
// The log is a bounded ring: once at capacity, the oldest entry is dropped.
type recorder struct {
	mu            sync.RWMutex
	logs          []api.RequestLog
	totalRequests int64
	totalDuration float64
	started       time.Time
}

func newRecorder() *recorder {
	return &recorder{started: time.Now()}
}

func (r *recorder) record(method, path string, status int, duration time.Duration) {
	durationMs := float64(duration.Microseconds()) / 1000.0

	r.mu.Lock()
	defer r.mu.Unlock()

	r.totalRequests++
	r.totalDuration += durationMs

	if len(r.logs) >= requestLogCapacity {
		r.logs = r.logs[1:]
	}
	r.logs = append(r.logs, api.RequestLog{
		Method:     method,
		Path:       path,
		Status:     status,
		DurationMs: durationMs,
		Timestamp:  time.Now().UnixMilli(),
	})
}

// Logs returns the retained request-log entries, oldest first.
func (r *recorder) Logs() []api.RequestLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	logs := make([]api.RequestLog, len(r.logs))
	copy(logs, r.logs)
	return logs
}

// Metrics summarizes the recorder with the given live connection count.
func (r *recorder) Metrics(activeConnections int) api.Metrics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var avg float64
	if r.totalRequests > 0 {
		avg = r.totalDuration / float64(r.totalRequests)
	}

	return api.Metrics{
		Uptime:                     time.Since(r.started).Truncate(time.Second).String(),
		TotalRequests:              r.totalRequests,
		AverageResponseTimeMs:      avg,
		ActiveWebSocketConnections: activeConnections,
	}
}
