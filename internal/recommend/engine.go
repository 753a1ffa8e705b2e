// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package recommend implements the hybrid book recommendation engine:
// content-based scoring from category and author preferences, collaborative
// scoring from nearest-peer reading activity, and a uniform catalog fallback
// when neither path produces results.
package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Engine is the recommendation engine. Safe for concurrent use once a
// DataProvider is attached.
type Engine struct {
	cfg      Config
	logger   zerolog.Logger
	cache    *derivedCache
	provider DataProvider
	mu       sync.RWMutex

	requestCount  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	fallbackCount atomic.Int64
	errorCount    atomic.Int64
}

// NewEngine creates a recommendation engine with the given configuration.
// A DataProvider must be attached via SetDataProvider before the first
// Recommend call.
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  newDerivedCache(cfg.Cache.TTL),
	}, nil
}

// SetDataProvider attaches the storage layer. Must be called before
// Recommend; set after construction to avoid a circular dependency between
// the engine and database packages.
func (e *Engine) SetDataProvider(provider DataProvider) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.provider = provider
}

// Recommend produces up to req.Count recommendations for the member. The
// result interleaves content and collaborative candidates; any scorer
// failure or an empty combined result switches the whole response to the
// uniform random catalog fallback.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	e.mu.RLock()
	provider := e.provider
	e.mu.RUnlock()
	if provider == nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("recommendation engine has no data provider")
	}

	n := req.Count
	if n <= 0 {
		n = e.cfg.Limits.DefaultCount
	}

	meta := ResponseMetadata{
		RequestID: req.RequestID,
		MemberID:  req.MemberID,
		Timestamp: start.UTC(),
	}
	meta.PeerCount = len(e.findSimilarMembers(ctx, req.MemberID, e.cfg.Limits.SimilarUsers))

	// Collaborative contributes at most half the final budget.
	content, collaborative := e.runScorers(ctx, req, n)

	var recommendations []Candidate
	switch {
	case content.Status == OutcomeFailed:
		e.logger.Error().Err(content.Err).
			Int64("member_id", req.MemberID).
			Msg("Content scoring failed, falling back to random")
		recommendations = nil
	case collaborative.Status == OutcomeFailed:
		e.logger.Error().Err(collaborative.Err).
			Int64("member_id", req.MemberID).
			Msg("Collaborative scoring failed, falling back to random")
		recommendations = nil
	default:
		recommendations = combine(content.Candidates, collaborative.Candidates, n)
		meta.ContentCount = len(content.Candidates)
	}

	if len(recommendations) == 0 {
		fallback, err := e.randomFallback(ctx, n)
		if err != nil {
			e.errorCount.Add(1)
			return nil, fmt.Errorf("random fallback for member %d: %w", req.MemberID, err)
		}
		recommendations = fallback
		meta.Fallback = true
		meta.ContentCount = 0
		e.fallbackCount.Add(1)
	}

	meta.LatencyMS = time.Since(start).Milliseconds()
	e.logger.Debug().
		Int64("member_id", req.MemberID).
		Int("count", len(recommendations)).
		Bool("fallback", meta.Fallback).
		Int64("latency_ms", meta.LatencyMS).
		Msg("Recommendation request served")

	return &Response{Recommendations: recommendations, Metadata: meta}, nil
}

// runScorers executes both scoring paths. A panic in either scorer is
// contained here and surfaces as a Failed outcome, so the caller always gets
// the fallback list instead of a crashed request.
func (e *Engine) runScorers(ctx context.Context, req Request, n int) (content, collaborative Outcome) {
	defer func() {
		if r := recover(); r != nil {
			content = failed(fmt.Errorf("scoring panic: %v", r))
			collaborative = Outcome{Status: OutcomeEmpty}
		}
	}()

	content = e.scoreContent(ctx, req, n)
	collaborative = Outcome{Status: OutcomeEmpty}
	if content.Status != OutcomeFailed {
		collaborative = e.scoreCollaborative(ctx, req, n/2)
	}
	return content, collaborative
}

// combine merges content and collaborative candidates. When both sets are
// non-empty the content head fills half the budget and collaborative rows
// follow; when one set is empty the other is used as-is. Duplicates keep the
// first occurrence, so a book surfaced by both scorers is attributed to
// content. The result is truncated to n in post-dedup order.
func combine(content, collaborative []Candidate, n int) []Candidate {
	var merged []Candidate
	switch {
	case len(content) > 0 && len(collaborative) > 0:
		head := n / 2
		if head > len(content) {
			head = len(content)
		}
		merged = make([]Candidate, 0, head+len(collaborative))
		merged = append(merged, content[:head]...)
		merged = append(merged, collaborative...)
	case len(content) > 0:
		merged = content
	default:
		merged = collaborative
	}

	seen := make(map[int64]struct{}, n)
	combined := make([]Candidate, 0, n)
	for _, c := range merged {
		if len(combined) >= n {
			break
		}
		if _, ok := seen[c.BookID]; ok {
			continue
		}
		seen[c.BookID] = struct{}{}
		combined = append(combined, c)
	}
	return combined
}

// randomFallback returns up to n uniformly sampled catalog books.
func (e *Engine) randomFallback(ctx context.Context, n int) ([]Candidate, error) {
	books, err := e.provider.GetRandomBooks(ctx, n)
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(books))
	for _, book := range books {
		candidates = append(candidates, Candidate{
			BookRow: book,
			Weight:  0,
			Source:  SourceRandom,
		})
	}
	return candidates, nil
}

// ClearCache drops all cached derived data. Call after bulk imports or
// whenever reading activity changes underneath the cache.
func (e *Engine) ClearCache() {
	e.cache.clear()
	e.logger.Info().Msg("Recommendation cache cleared")
}

// CacheSize returns the number of cached derived entries.
func (e *Engine) CacheSize() int {
	return e.cache.size()
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:  e.requestCount.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		FallbackCount: e.fallbackCount.Load(),
		ErrorCount:    e.errorCount.Load(),
	}
}

func (e *Engine) cacheHit()  { e.cacheHits.Add(1) }
func (e *Engine) cacheMiss() { e.cacheMisses.Add(1) }
