package api

// Metrics is the performance summary returned by GET /metrics.
type Metrics struct {
	Uptime                     string  `json:"uptime"`
	TotalRequests              int64   `json:"totalRequests"`
	AverageResponseTimeMs      float64 `json:"averageResponseTimeMs"`
	ActiveWebSocketConnections int     `json:"activeWebSocketConnections"`
}
