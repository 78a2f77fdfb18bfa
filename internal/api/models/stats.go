package models

import "time"

// CPUStats contains system CPU statistics.
type CPUStats struct {
	NumCPU      int     `json:"num_cpu"`
	UsedPercent float64 `json:"used_percent"`
	IdlePercent float64 `json:"idle_percent"`
}

// MemoryStats contains system memory statistics.
type MemoryStats struct {
	TotalMB     float64 `json:"total_mb"`
	FreeMB      float64 `json:"free_mb"`
	UsedMB      float64 `json:"used_mb"`
	UsedPercent float64 `json:"used_percent"`
}

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string           `json:"uptime"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	StartTime     time.Time        `json:"start_time"`
	CPU           CPUStats         `json:"cpu"`
	Memory        MemoryStats      `json:"memory"`
	Query         QueryStatsResponse `json:"query"`
}

// QueryStatsResponse contains query volume and outcome statistics,
// projected from metrics.Snapshot.
type QueryStatsResponse struct {
	QueriesTotal    uint64            `json:"queries_total"`
	QueriesFailed   uint64            `json:"queries_failed"`
	QueriesTimeout  uint64            `json:"queries_timeout"`
	AvgLatencyMs    float64           `json:"avg_latency_ms"`
	QueriesByFamily map[string]uint64 `json:"queries_by_family,omitempty"`
}
