package models

import "time"

// EngineMetrics is a point-in-time summary of instrumentation counters.
type EngineMetrics struct {
	CacheHitRatio            float64                       `json:"cache_hit_ratio"`
	CacheHits                uint64                        `json:"cache_hits"`
	CacheMisses              uint64                        `json:"cache_misses"`
	RequestsTotal            uint64                        `json:"requests_total"`
	AverageRequestDurationMs float64                       `json:"average_request_duration_ms"`
	DBQueryCount             uint64                        `json:"db_query_count"`
	AverageDBQueryDurationMs float64                       `json:"average_db_query_duration_ms"`
	Classifications          map[AvailabilityStatus]uint64 `json:"classifications"`
	SelectionRejections      uint64                        `json:"selection_rejections"`
	StaleResponses           uint64                        `json:"stale_responses"`
	ActiveFlows              int                           `json:"active_flows"`
	Goroutines               int                           `json:"goroutines"`
	GeneratedAt              time.Time                     `json:"generated_at"`
}
