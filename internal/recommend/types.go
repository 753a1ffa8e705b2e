// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"context"
	"time"
)

// Note: This package has no dependencies on other internal packages to keep
// the engine self-contained. The DataProvider interface lets the database
// layer plug in without circular imports.

// BookRow is a catalog row as the engine consumes it: the stable book id plus
// the display metadata returned to callers. Author and Category may be empty.
type BookRow struct {
	BookID   int64  `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Category string `json:"book_category,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// BookAttribute is the slim row used for preference accumulation: category
// and author only, fetched in one batched lookup.
type BookAttribute struct {
	BookID   int64
	Category string
	Author   string
}

// MemberBookPair is one member-book relation, status-agnostic. The peer
// similarity scan consumes these system-wide.
type MemberBookPair struct {
	MemberID int64
	BookID   int64
}

// ReadingLists holds a member's book ids partitioned by reading status:
// the read list (READED or READING) and the want list (WANT_TO_READ).
// The two sets are disjoint by construction but the engine does not
// deduplicate across them if the source data is inconsistent.
type ReadingLists struct {
	ReadIDs []int64
	WantIDs []int64
}

// Empty reports whether the member has no reading history at all.
func (l ReadingLists) Empty() bool {
	return len(l.ReadIDs) == 0 && len(l.WantIDs) == 0
}

// AllIDs returns the read and want lists concatenated, read first.
func (l ReadingLists) AllIDs() []int64 {
	ids := make([]int64, 0, len(l.ReadIDs)+len(l.WantIDs))
	ids = append(ids, l.ReadIDs...)
	ids = append(ids, l.WantIDs...)
	return ids
}

// OwnedSet returns the set of book ids the member already has a relation to.
func (l ReadingLists) OwnedSet() map[int64]struct{} {
	owned := make(map[int64]struct{}, len(l.ReadIDs)+len(l.WantIDs))
	for _, id := range l.ReadIDs {
		owned[id] = struct{}{}
	}
	for _, id := range l.WantIDs {
		owned[id] = struct{}{}
	}
	return owned
}

// readSet returns only the read-list ids as a set.
func (l ReadingLists) readSet() map[int64]struct{} {
	read := make(map[int64]struct{}, len(l.ReadIDs))
	for _, id := range l.ReadIDs {
		read[id] = struct{}{}
	}
	return read
}

// PreferenceScores holds a member's accumulated category and author weights.
// A member with no reading history has no PreferenceScores at all (the
// extractor returns nil); the maps are never fabricated as empty stand-ins.
type PreferenceScores struct {
	Categories map[string]float64 `json:"categories"`
	Authors    map[string]float64 `json:"authors"`
}

// Source tags which scorer produced a candidate.
type Source string

const (
	// SourceContent marks candidates from the content-based scorer.
	SourceContent Source = "content"
	// SourceCollaborative marks candidates from the collaborative scorer.
	SourceCollaborative Source = "collaborative"
	// SourceRandom marks candidates from the uniform catalog fallback.
	SourceRandom Source = "random"
)

// Candidate is one ranked row of a scorer's output.
type Candidate struct {
	BookRow
	// Weight is the accumulated preference weight for content candidates.
	// Collaborative candidates carry zero: the collaborative path returns
	// peer-touched membership without an agreement strength score.
	Weight float64 `json:"weight"`
	Source Source  `json:"source"`
}

// OutcomeStatus tags a scorer result variant.
type OutcomeStatus int

const (
	// OutcomeScored means the scorer produced at least one candidate.
	OutcomeScored OutcomeStatus = iota
	// OutcomeEmpty means the scorer ran but found nothing to recommend.
	OutcomeEmpty
	// OutcomeFailed means the scorer hit an unexpected error.
	OutcomeFailed
)

// Outcome is a scorer result: Scored with candidates, Empty, or Failed with
// the cause. The combiner matches on Status instead of inferring failure
// from emptiness.
type Outcome struct {
	Status     OutcomeStatus
	Candidates []Candidate
	Err        error
}

// scored wraps candidates into a Scored outcome, downgrading to Empty when
// there are none.
func scored(candidates []Candidate) Outcome {
	if len(candidates) == 0 {
		return Outcome{Status: OutcomeEmpty}
	}
	return Outcome{Status: OutcomeScored, Candidates: candidates}
}

// failed wraps an error into a Failed outcome.
func failed(err error) Outcome {
	return Outcome{Status: OutcomeFailed, Err: err}
}

// Request is a recommendation request. ReadList and WantList are precomputed
// by the caller from the member's relation records; the combiner does not
// re-derive them (the internal scorers re-fetch via the cache, an accepted
// duplication the cache absorbs after the first call).
type Request struct {
	// MemberID is the member to recommend for.
	MemberID int64 `json:"member_id"`

	// ReadList holds book ids with status READED or READING.
	ReadList []int64 `json:"read_list"`

	// WantList holds book ids with status WANT_TO_READ.
	WantList []int64 `json:"want_list"`

	// Count is the number of recommendations to return.
	// Defaults to Config.Limits.DefaultCount if zero.
	Count int `json:"count,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response is a recommendation response.
type Response struct {
	// Recommendations is the ordered, deduplicated result list.
	Recommendations []Candidate `json:"recommendations"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID    string    `json:"request_id"`
	MemberID     int64     `json:"member_id"`
	ContentCount int       `json:"content_count"`
	PeerCount    int       `json:"peer_count"`
	Fallback     bool      `json:"fallback"`
	LatencyMS    int64     `json:"latency_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	RequestCount  int64 `json:"request_count"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	FallbackCount int64 `json:"fallback_count"`
	ErrorCount    int64 `json:"error_count"`
}

// DataProvider defines the read-only queries the engine issues against the
// storage layer. The database package implements it.
type DataProvider interface {
	// GetMemberReadingLists returns the member's book ids partitioned by
	// reading status. A member with no relations yields empty lists, not an
	// error.
	GetMemberReadingLists(ctx context.Context, memberID int64) (ReadingLists, error)

	// GetBookAttributes returns category and author for the given book ids
	// in a single batched lookup.
	GetBookAttributes(ctx context.Context, bookIDs []int64) ([]BookAttribute, error)

	// GetCatalog returns catalog rows excluding the given book ids, ordered
	// by book id.
	GetCatalog(ctx context.Context, excludeIDs []int64) ([]BookRow, error)

	// GetBooksByIDs returns catalog rows for the given book ids in storage
	// order, capped at limit.
	GetBooksByIDs(ctx context.Context, bookIDs []int64, limit int) ([]BookRow, error)

	// GetAllMemberBookPairs returns every member-book relation system-wide.
	GetAllMemberBookPairs(ctx context.Context) ([]MemberBookPair, error)

	// GetRandomBooks returns up to n uniformly sampled catalog rows.
	GetRandomBooks(ctx context.Context, n int) ([]BookRow, error)
}
