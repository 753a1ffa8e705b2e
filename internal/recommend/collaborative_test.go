// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"context"
	"testing"
)

func TestScoreCollaborativeExcludesOwned(t *testing.T) {
	provider := fixtureProvider()
	engine := newTestEngine(t, provider)

	outcome := engine.scoreCollaborative(context.Background(),
		Request{MemberID: 1, ReadList: []int64{1}, WantList: []int64{2}}, 5)
	if outcome.Status != OutcomeScored {
		t.Fatalf("expected scored outcome, got %v", outcome.Status)
	}
	for _, c := range outcome.Candidates {
		if c.BookID == 1 || c.BookID == 2 {
			t.Errorf("candidate %d is already on the member's lists", c.BookID)
		}
		if c.Source != SourceCollaborative {
			t.Errorf("wrong source tag: %s", c.Source)
		}
		if c.Weight != 0 {
			t.Errorf("collaborative candidates carry no weight, got %v", c.Weight)
		}
	}
}

func TestScoreCollaborativeNoPeers(t *testing.T) {
	// A member absent from the incidence matrix has no peers.
	provider := fixtureProvider()
	engine := newTestEngine(t, provider)

	outcome := engine.scoreCollaborative(context.Background(), Request{MemberID: 42}, 5)
	if outcome.Status != OutcomeEmpty {
		t.Fatalf("expected empty outcome, got %v", outcome.Status)
	}
}

func TestScoreCollaborativeBudget(t *testing.T) {
	provider := fixtureProvider()
	engine := newTestEngine(t, provider)

	outcome := engine.scoreCollaborative(context.Background(),
		Request{MemberID: 1, ReadList: []int64{1}, WantList: []int64{2}}, 1)
	if outcome.Status != OutcomeScored {
		t.Fatalf("expected scored outcome, got %v", outcome.Status)
	}
	if len(outcome.Candidates) != 1 {
		t.Fatalf("expected budget of 1, got %d", len(outcome.Candidates))
	}

	// A zero budget yields an empty result, not an error.
	outcome = engine.scoreCollaborative(context.Background(),
		Request{MemberID: 1, ReadList: []int64{1}, WantList: []int64{2}}, 0)
	if outcome.Status != OutcomeEmpty {
		t.Fatalf("expected empty outcome for zero budget, got %v", outcome.Status)
	}
}
