// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"context"
	"testing"
)

func TestBuildInteractionMatrixShape(t *testing.T) {
	pairs := []MemberBookPair{
		{MemberID: 5, BookID: 30},
		{MemberID: 5, BookID: 10},
		{MemberID: 7, BookID: 10},
		{MemberID: 5, BookID: 30}, // duplicate relation
	}
	m := buildInteractionMatrix(pairs)

	if len(m.memberIDs) != 2 {
		t.Fatalf("expected 2 member rows, got %d", len(m.memberIDs))
	}
	if len(m.rows[0]) != 2 {
		t.Fatalf("expected 2 book columns, got %d", len(m.rows[0]))
	}
	// Rows keep first-seen order, columns are sorted by book id.
	if m.memberIDs[0] != 5 || m.memberIDs[1] != 7 {
		t.Fatalf("unexpected row order: %v", m.memberIDs)
	}
	row5 := m.rows[m.rowIndex[5]]
	if row5[0] != 1.0 || row5[1] != 1.0 {
		t.Fatalf("member 5 row wrong: %v", row5)
	}
	row7 := m.rows[m.rowIndex[7]]
	if row7[0] != 1.0 || row7[1] != 0.0 {
		t.Fatalf("member 7 row wrong: %v", row7)
	}
}

func TestNearestPeersExcludesSelf(t *testing.T) {
	pairs := []MemberBookPair{
		{MemberID: 1, BookID: 1}, {MemberID: 1, BookID: 2},
		{MemberID: 2, BookID: 1}, {MemberID: 2, BookID: 2},
		{MemberID: 3, BookID: 9},
	}
	m := buildInteractionMatrix(pairs)

	peers := m.nearestPeers(1, 5)
	if len(peers) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(peers))
	}
	for _, id := range peers {
		if id == 1 {
			t.Fatal("peer set contains the member itself")
		}
	}
	// Member 2 shares both books with member 1, so it ranks first.
	if peers[0] != 2 {
		t.Fatalf("expected member 2 nearest, got %d", peers[0])
	}
}

func TestNearestPeersRespectsK(t *testing.T) {
	pairs := []MemberBookPair{
		{MemberID: 1, BookID: 1},
		{MemberID: 2, BookID: 1},
		{MemberID: 3, BookID: 1},
		{MemberID: 4, BookID: 1},
	}
	m := buildInteractionMatrix(pairs)

	peers := m.nearestPeers(1, 2)
	if len(peers) != 2 {
		t.Fatalf("expected k=2 peers, got %d", len(peers))
	}
}

func TestNearestPeersTieOrderIsFirstSeen(t *testing.T) {
	// Members 2 and 3 are equidistant from 1; first-seen order wins.
	pairs := []MemberBookPair{
		{MemberID: 1, BookID: 1},
		{MemberID: 3, BookID: 2},
		{MemberID: 2, BookID: 3},
	}
	m := buildInteractionMatrix(pairs)

	peers := m.nearestPeers(1, 2)
	if len(peers) != 2 || peers[0] != 3 || peers[1] != 2 {
		t.Fatalf("expected tie order [3 2], got %v", peers)
	}
}

func TestNearestPeersUnknownMember(t *testing.T) {
	m := buildInteractionMatrix([]MemberBookPair{{MemberID: 1, BookID: 1}})
	if peers := m.nearestPeers(99, 5); peers != nil {
		t.Fatalf("expected nil peers for unknown member, got %v", peers)
	}
}

func TestNearestPeersSingleMember(t *testing.T) {
	m := buildInteractionMatrix([]MemberBookPair{{MemberID: 1, BookID: 1}})
	if peers := m.nearestPeers(1, 5); len(peers) != 0 {
		t.Fatalf("expected no peers in a one-member system, got %v", peers)
	}
}

func TestFindSimilarMembersDegradesOnError(t *testing.T) {
	provider := fixtureProvider()
	provider.failPairs = true
	engine := newTestEngine(t, provider)

	peers := engine.findSimilarMembers(context.Background(), 1, 5)
	if len(peers) != 0 {
		t.Fatalf("expected empty peer set on storage error, got %v", peers)
	}
}

func TestFindSimilarMembersCachesPerK(t *testing.T) {
	provider := fixtureProvider()
	engine := newTestEngine(t, provider)

	engine.findSimilarMembers(context.Background(), 1, 2)
	calls := provider.pairsCalls
	engine.findSimilarMembers(context.Background(), 1, 2)
	if provider.pairsCalls != calls {
		t.Fatal("repeated peer search with same k hit storage")
	}
	engine.findSimilarMembers(context.Background(), 1, 3)
	if provider.pairsCalls != calls+1 {
		t.Fatal("peer search with different k should recompute")
	}
}

func TestEuclideanDistance(t *testing.T) {
	a := []float64{1, 0, 1}
	b := []float64{0, 0, 1}
	if d := euclideanDistance(a, b); d != 1.0 {
		t.Fatalf("expected distance 1.0, got %v", d)
	}
	if d := euclideanDistance(a, a); d != 0.0 {
		t.Fatalf("expected zero self distance, got %v", d)
	}
}
