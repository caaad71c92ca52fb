package domain

// ============================================================
// Health & Metrics responses
// ============================================================

// HealthStatus is returned by the sandbox GET /healthz.
type HealthStatus struct {
	Status   string `json:"status"` // healthy, degraded
	Users    int    `json:"users"`
	Payers   int    `json:"payers"`
	Charges  int    `json:"charges"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
	DevCodes bool   `json:"devCodes"`
}

// ClientStats is the snapshot printed by the `stats` command.
type ClientStats struct {
	TotalRequests float64 `json:"totalRequests"`
	ErrorCount    float64 `json:"errorCount"`
	ErrorRate     float64 `json:"errorRate"`
	CacheHits     float64 `json:"cacheHits"`
	CacheMisses   float64 `json:"cacheMisses"`
	CacheHitRate  float64 `json:"cacheHitRate"`
	AvgLatencyMs  float64 `json:"avgLatencyMs"`
}
