// Package analytics defines the query-analytics event schema, the collector
// that publishes events to Kafka, and the aggregator that consumes them into
// in-memory stats.
package analytics

import "time"

// EventType labels a query analytics event.
type EventType string

const (
	EventQuery      EventType = "query"
	EventCacheHit   EventType = "cache_hit"
	EventCacheMiss  EventType = "cache_miss"
	EventZeroResult EventType = "zero_result"
	EventError      EventType = "error"
)

// QueryEvent is emitted by the search daemon for every executed query.
type QueryEvent struct {
	Type       EventType `json:"type"`
	Query      string    `json:"query"`
	Considered int       `json:"documents_considered"`
	Matched    int       `json:"documents_matched"`
	Returned   int       `json:"returned"`
	LatencyMs  int64     `json:"latency_ms"`
	CacheHit   bool      `json:"cache_hit"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
}
