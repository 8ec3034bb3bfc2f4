// Package handler exposes the query executor over HTTP for the search
// daemon, with optional result caching and analytics event tracking.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/zonesearch/zonesearch/internal/analytics"
	"github.com/zonesearch/zonesearch/internal/searcher/cache"
	"github.com/zonesearch/zonesearch/internal/searcher/executor"
	pkgerrors "github.com/zonesearch/zonesearch/pkg/errors"
	"github.com/zonesearch/zonesearch/pkg/logger"
	"github.com/zonesearch/zonesearch/pkg/metrics"
)

// QueryExecutor answers one query with the top-k ranked documents.
type QueryExecutor interface {
	Execute(ctx context.Context, rawQuery string, k int) (*executor.QueryResult, error)
}

// Handler serves the search API.
type Handler struct {
	executor  QueryExecutor
	cache     *cache.QueryCache
	collector *analytics.Collector
	metrics   *metrics.Metrics
	defaultK  int
	maxK      int
	logger    *slog.Logger
}

// New creates a Handler. cache, collector, and m may be nil; the matching
// features are then disabled.
func New(exec QueryExecutor, queryCache *cache.QueryCache, collector *analytics.Collector, m *metrics.Metrics, defaultK, maxK int) *Handler {
	return &Handler{
		executor:  exec,
		cache:     queryCache,
		collector: collector,
		metrics:   m,
		defaultK:  defaultK,
		maxK:      maxK,
		logger:    slog.Default().With("component", "search-handler"),
	}
}

// Search handles GET /api/v1/search?q=...&k=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	k := h.defaultK
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		parsed, err := strconv.Atoi(kStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "k must be a positive integer")
			return
		}
		if parsed > h.maxK {
			parsed = h.maxK
		}
		k = parsed
	}

	var result *executor.QueryResult
	var err error
	cacheHit := false
	if h.cache != nil {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, query, k, func() (*executor.QueryResult, error) {
			return h.executor.Execute(ctx, query, k)
		})
	} else {
		result, err = h.executor.Execute(ctx, query, k)
	}

	latency := time.Since(start)
	if err != nil {
		h.observeQuery("error", cacheHit, latency, nil)
		if errors.Is(err, pkgerrors.ErrMalformedPhrase) || errors.Is(err, pkgerrors.ErrInvalidArguments) {
			h.writeError(w, pkgerrors.HTTPStatusCode(err), err.Error())
			return
		}
		log.Error("search execution failed", "query", query, "error", err)
		h.writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	outcome := "hit"
	if result.Matched == 0 {
		outcome = "zero_result"
	}
	h.observeQuery(outcome, cacheHit, latency, result)

	log.Info("search completed",
		"query", query,
		"considered", result.Considered,
		"matched", result.Matched,
		"returned", len(result.Results),
		"cache_hit", cacheHit,
		"latency_ms", latency.Milliseconds(),
	)
	if h.collector != nil {
		eventType := analytics.EventCacheMiss
		if cacheHit {
			eventType = analytics.EventCacheHit
		}
		h.collector.Track(analytics.QueryEvent{
			Type:       eventType,
			Query:      query,
			Considered: result.Considered,
			Matched:    result.Matched,
			Returned:   len(result.Results),
			LatencyMs:  latency.Milliseconds(),
			CacheHit:   cacheHit,
			Timestamp:  time.Now().UTC(),
			RequestID:  logger.RequestIDFromContext(ctx),
		})
	}

	h.writeJSON(w, http.StatusOK, result)
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// CacheInvalidate handles POST /api/v1/cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) observeQuery(outcome string, cacheHit bool, latency time.Duration, result *executor.QueryResult) {
	if h.metrics == nil {
		return
	}
	h.metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	cacheStatus := "miss"
	if cacheHit {
		cacheStatus = "hit"
		h.metrics.CacheHitsTotal.Inc()
	} else if h.cache != nil {
		h.metrics.CacheMissesTotal.Inc()
	}
	h.metrics.QueryLatency.WithLabelValues(cacheStatus).Observe(latency.Seconds())
	if result != nil {
		h.metrics.DocsConsidered.Observe(float64(result.Considered))
		h.metrics.DocsMatched.Observe(float64(result.Matched))
		h.metrics.ResultsReturned.Observe(float64(len(result.Results)))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
