package api

// RequestLog is a single request-log entry returned by GET /logs.
// Timestamp is a Unix timestamp in milliseconds.
type RequestLog struct {
	Method     string  `json:"method,omitempty"`
	Path       string  `json:"path,omitempty"`
	Status     int     `json:"status,omitempty"`
	DurationMs float64 `json:"durationMs"`
	Timestamp  int64   `json:"timestamp,omitempty"`
}

// AverageDurationMs computes the mean request duration over the given log
// entries. Returns 0 for an empty slice.
func AverageDurationMs(logs []RequestLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	var total float64
	for _, entry := range logs {
		total += entry.DurationMs
	}
	return total / float64(len(logs))
}
