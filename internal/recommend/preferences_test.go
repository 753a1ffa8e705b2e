// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtractPreferencesWeighting(t *testing.T) {
	provider := fixtureProvider()
	engine := newTestEngine(t, provider)

	prefs, err := engine.extractPreferences(context.Background(), 1)
	if err != nil {
		t.Fatalf("extractPreferences failed: %v", err)
	}
	if prefs == nil {
		t.Fatal("expected preferences for member with history")
	}

	// Read book 1 (NOVEL, Kim) at 0.7, want book 2 (SCIENCE, Lee) at 1.0.
	if got := prefs.Categories["NOVEL"]; !floatEquals(got, 2.0*0.7) {
		t.Errorf("NOVEL category score: got %v, want %v", got, 2.0*0.7)
	}
	if got := prefs.Categories["SCIENCE"]; !floatEquals(got, 2.0*1.0) {
		t.Errorf("SCIENCE category score: got %v, want %v", got, 2.0*1.0)
	}
	if got := prefs.Authors["Kim"]; !floatEquals(got, 1.5*0.7) {
		t.Errorf("Kim author score: got %v, want %v", got, 1.5*0.7)
	}
	if got := prefs.Authors["Lee"]; !floatEquals(got, 1.5*1.0) {
		t.Errorf("Lee author score: got %v, want %v", got, 1.5*1.0)
	}
}

func TestExtractPreferencesAccumulatesRepeatedAttributes(t *testing.T) {
	provider := fixtureProvider()
	engine := newTestEngine(t, provider)

	// Member 2 read two Kim novels and wants a Park history title.
	prefs, err := engine.extractPreferences(context.Background(), 2)
	if err != nil {
		t.Fatalf("extractPreferences failed: %v", err)
	}
	if got := prefs.Categories["NOVEL"]; !floatEquals(got, 2*2.0*0.7) {
		t.Errorf("NOVEL should accumulate across two read novels: got %v", got)
	}
	if got := prefs.Authors["Kim"]; !floatEquals(got, 2*1.5*0.7) {
		t.Errorf("Kim should accumulate across two read books: got %v", got)
	}
	if got := prefs.Categories["HISTORY"]; !floatEquals(got, 2.0*1.0) {
		t.Errorf("HISTORY from want list: got %v", got)
	}
}

func TestExtractPreferencesNoHistory(t *testing.T) {
	provider := fixtureProvider()
	engine := newTestEngine(t, provider)

	prefs, err := engine.extractPreferences(context.Background(), 42)
	if err != nil {
		t.Fatalf("extractPreferences failed: %v", err)
	}
	if prefs != nil {
		t.Fatal("expected nil preferences for member with no history")
	}

	// The absent result itself is cached; a second call must not hit storage.
	attrsCalls := provider.attrsCalls
	listsCalls := provider.listsCalls
	if _, err := engine.extractPreferences(context.Background(), 42); err != nil {
		t.Fatalf("second extractPreferences failed: %v", err)
	}
	if provider.attrsCalls != attrsCalls || provider.listsCalls != listsCalls {
		t.Fatal("cached absent preferences still hit storage")
	}
}

func TestAccumulatePreferencesSkipsEmptyAttributes(t *testing.T) {
	engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	lists := ReadingLists{WantIDs: []int64{7}}
	attrs := []BookAttribute{{BookID: 7, Category: "", Author: "Nam"}}

	prefs := engine.accumulatePreferences(lists, attrs)
	if len(prefs.Categories) != 0 {
		t.Errorf("empty category must not create a score entry: %v", prefs.Categories)
	}
	if got := prefs.Authors["Nam"]; !floatEquals(got, 1.5) {
		t.Errorf("author score for book with empty category: got %v", got)
	}
}
