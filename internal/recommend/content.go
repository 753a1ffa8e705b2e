// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// scoreContent ranks catalog books the member has not touched by their
// accumulated category and author preference weights. Books matching no
// preferred category or author score zero and are dropped. Returns Empty
// when the member has no reading history or nothing in the catalog matches.
func (e *Engine) scoreContent(ctx context.Context, req Request, n int) Outcome {
	prefs, err := e.extractPreferences(ctx, req.MemberID)
	if err != nil {
		return failed(fmt.Errorf("content scorer: %w", err))
	}
	if prefs == nil {
		return Outcome{Status: OutcomeEmpty}
	}

	owned := make(map[int64]struct{}, len(req.ReadList)+len(req.WantList))
	excludeIDs := make([]int64, 0, len(req.ReadList)+len(req.WantList))
	for _, id := range req.ReadList {
		if _, ok := owned[id]; !ok {
			owned[id] = struct{}{}
			excludeIDs = append(excludeIDs, id)
		}
	}
	for _, id := range req.WantList {
		if _, ok := owned[id]; !ok {
			owned[id] = struct{}{}
			excludeIDs = append(excludeIDs, id)
		}
	}

	catalog, err := e.provider.GetCatalog(ctx, excludeIDs)
	if err != nil {
		return failed(fmt.Errorf("content scorer: fetch catalog: %w", err))
	}

	// Zero-weight rows stay in: the ranking takes the top n by weight over
	// the whole remaining catalog, it does not require a preference match.
	candidates := make([]Candidate, 0, len(catalog))
	for _, book := range catalog {
		candidates = append(candidates, Candidate{
			BookRow: book,
			Weight:  prefs.Categories[book.Category] + prefs.Authors[book.Author],
			Source:  SourceContent,
		})
	}

	// Stable sort keeps catalog order among equal weights.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return scored(candidates)
}
