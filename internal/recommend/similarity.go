// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"context"
	"math"
	"sort"
)

// interactionMatrix is a dense binary member-item incidence matrix. Rows are
// members in first-seen scan order, columns are book ids in ascending order.
type interactionMatrix struct {
	memberIDs []int64
	rowIndex  map[int64]int
	rows      [][]float64
}

// buildInteractionMatrix constructs the incidence matrix from the raw
// member-book pairs. A cell is 1.0 when the member has any relation to the
// book, regardless of reading status. Duplicate pairs collapse to the same
// cell.
func buildInteractionMatrix(pairs []MemberBookPair) *interactionMatrix {
	memberIDs := make([]int64, 0)
	rowIndex := make(map[int64]int)
	colIndex := make(map[int64]int)
	bookIDs := make([]int64, 0)

	for _, p := range pairs {
		if _, ok := rowIndex[p.MemberID]; !ok {
			rowIndex[p.MemberID] = len(memberIDs)
			memberIDs = append(memberIDs, p.MemberID)
		}
		if _, ok := colIndex[p.BookID]; !ok {
			colIndex[p.BookID] = 0
			bookIDs = append(bookIDs, p.BookID)
		}
	}

	sort.Slice(bookIDs, func(i, j int) bool { return bookIDs[i] < bookIDs[j] })
	for i, id := range bookIDs {
		colIndex[id] = i
	}

	rows := make([][]float64, len(memberIDs))
	for i := range rows {
		rows[i] = make([]float64, len(bookIDs))
	}
	for _, p := range pairs {
		rows[rowIndex[p.MemberID]][colIndex[p.BookID]] = 1.0
	}

	return &interactionMatrix{
		memberIDs: memberIDs,
		rowIndex:  rowIndex,
		rows:      rows,
	}
}

// euclideanDistance computes the straight-line distance between two rows.
func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// nearestPeers returns up to k member ids most similar to memberID by
// Euclidean distance over the incidence matrix, nearest first. The member's
// own row is excluded. Ties keep matrix row order, which is the first-seen
// scan order of the pairs, so results are deterministic for identical input.
func (m *interactionMatrix) nearestPeers(memberID int64, k int) []int64 {
	selfRow, ok := m.rowIndex[memberID]
	if !ok {
		return nil
	}

	type neighbor struct {
		row      int
		distance float64
	}
	neighbors := make([]neighbor, 0, len(m.rows)-1)
	for row := range m.rows {
		if row == selfRow {
			continue
		}
		neighbors = append(neighbors, neighbor{
			row:      row,
			distance: euclideanDistance(m.rows[selfRow], m.rows[row]),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	if k > len(neighbors) {
		k = len(neighbors)
	}
	peerIDs := make([]int64, 0, k)
	for _, n := range neighbors[:k] {
		peerIDs = append(peerIDs, m.memberIDs[n.row])
	}
	return peerIDs
}

// findSimilarMembers returns the ids of up to k members most similar to the
// given member. Internal failures degrade to an empty peer set with a warn
// log rather than failing the request; the collaborative scorer treats an
// empty peer set as "nothing to recommend".
func (e *Engine) findSimilarMembers(ctx context.Context, memberID int64, k int) []int64 {
	key := peerKey{memberID: memberID, k: k}
	if peerIDs, ok := e.cache.getPeers(key); ok {
		e.cacheHit()
		return peerIDs
	}
	e.cacheMiss()

	pairs, err := e.provider.GetAllMemberBookPairs(ctx)
	if err != nil {
		e.logger.Warn().Err(err).
			Int64("member_id", memberID).
			Msg("Peer search failed to load member-book pairs")
		return nil
	}
	if len(pairs) == 0 {
		e.cache.setPeers(key, nil)
		return nil
	}

	matrix := buildInteractionMatrix(pairs)
	peerIDs := matrix.nearestPeers(memberID, k)

	e.cache.setPeers(key, peerIDs)
	return peerIDs
}
