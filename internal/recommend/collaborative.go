// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"context"
	"fmt"
)

// scoreCollaborative recommends books that the member's nearest peers have a
// relation to and the member does not. Candidates carry no weight: the peer
// set's book membership is the signal, not an agreement score. Returns Empty
// when no peers exist or peers touched nothing new.
func (e *Engine) scoreCollaborative(ctx context.Context, req Request, n int) Outcome {
	peerIDs := e.findSimilarMembers(ctx, req.MemberID, e.cfg.Limits.SimilarUsers)
	if len(peerIDs) == 0 {
		return Outcome{Status: OutcomeEmpty}
	}

	owned := make(map[int64]struct{}, len(req.ReadList)+len(req.WantList))
	for _, id := range req.ReadList {
		owned[id] = struct{}{}
	}
	for _, id := range req.WantList {
		owned[id] = struct{}{}
	}

	// Union of peer-touched books, deduplicated, peer order preserved.
	seen := make(map[int64]struct{})
	bookIDs := make([]int64, 0)
	for _, peerID := range peerIDs {
		lists, err := e.readingLists(ctx, peerID)
		if err != nil {
			return failed(fmt.Errorf("collaborative scorer: fetch peer %d lists: %w", peerID, err))
		}
		for _, id := range lists.AllIDs() {
			if _, ok := owned[id]; ok {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			bookIDs = append(bookIDs, id)
		}
	}
	if len(bookIDs) == 0 {
		return Outcome{Status: OutcomeEmpty}
	}

	books, err := e.provider.GetBooksByIDs(ctx, bookIDs, n)
	if err != nil {
		return failed(fmt.Errorf("collaborative scorer: fetch books: %w", err))
	}

	candidates := make([]Candidate, 0, len(books))
	for _, book := range books {
		candidates = append(candidates, Candidate{
			BookRow: book,
			Weight:  0,
			Source:  SourceCollaborative,
		})
	}
	return scored(candidates)
}
