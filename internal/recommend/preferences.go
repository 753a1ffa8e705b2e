// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"context"
	"fmt"
)

// extractPreferences builds a member's category and author preference scores
// from their reading history. Returns nil (no error) when the member has no
// reading history at all. Each book contributes its category weight and its
// author weight; books on the read list are down-weighted relative to
// want-list books.
func (e *Engine) extractPreferences(ctx context.Context, memberID int64) (*PreferenceScores, error) {
	if prefs, ok := e.cache.getPrefs(memberID); ok {
		e.cacheHit()
		return prefs, nil
	}
	e.cacheMiss()

	lists, err := e.readingLists(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("fetch reading lists for member %d: %w", memberID, err)
	}

	if lists.Empty() {
		e.cache.setPrefs(memberID, nil)
		return nil, nil
	}

	attrs, err := e.provider.GetBookAttributes(ctx, lists.AllIDs())
	if err != nil {
		return nil, fmt.Errorf("fetch book attributes for member %d: %w", memberID, err)
	}

	prefs := e.accumulatePreferences(lists, attrs)
	e.cache.setPrefs(memberID, prefs)
	return prefs, nil
}

// accumulatePreferences folds book attributes into preference score maps.
// Unknown book ids in the lists contribute nothing; books with an empty
// category or author skip that attribute only.
func (e *Engine) accumulatePreferences(lists ReadingLists, attrs []BookAttribute) *PreferenceScores {
	read := lists.readSet()
	prefs := &PreferenceScores{
		Categories: make(map[string]float64),
		Authors:    make(map[string]float64),
	}
	for _, attr := range attrs {
		weight := e.cfg.Weights.UnreadBook
		if _, ok := read[attr.BookID]; ok {
			weight = e.cfg.Weights.ReadBook
		}
		if attr.Category != "" {
			prefs.Categories[attr.Category] += e.cfg.Weights.CategoryPreference * weight
		}
		if attr.Author != "" {
			prefs.Authors[attr.Author] += e.cfg.Weights.AuthorPreference * weight
		}
	}
	return prefs
}

// readingLists fetches a member's partitioned reading lists through the cache.
func (e *Engine) readingLists(ctx context.Context, memberID int64) (ReadingLists, error) {
	if lists, ok := e.cache.getLists(memberID); ok {
		e.cacheHit()
		return lists, nil
	}
	e.cacheMiss()

	lists, err := e.provider.GetMemberReadingLists(ctx, memberID)
	if err != nil {
		return ReadingLists{}, err
	}
	e.cache.setLists(memberID, lists)
	return lists, nil
}
