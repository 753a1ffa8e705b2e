// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package recommend

import (
	"sync"
	"time"
)

// cachedEntry wraps a derived value with its computation time. Storing the
// entry rather than the raw value lets the cache distinguish "computed and
// absent" (a member with no reading history caches a nil *PreferenceScores)
// from "never computed".
type cachedEntry[T any] struct {
	value    T
	cachedAt time.Time
}

// peerKey identifies a cached peer search. Different k values for the same
// member are distinct computations.
type peerKey struct {
	memberID int64
	k        int
}

// derivedCache holds per-member derived data: reading lists, preference
// scores, and peer sets. Entries expire after ttl; a zero ttl means entries
// live until Clear is called or the process exits.
type derivedCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	lists map[int64]cachedEntry[ReadingLists]
	prefs map[int64]cachedEntry[*PreferenceScores]
	peers map[peerKey]cachedEntry[[]int64]
}

func newDerivedCache(ttl time.Duration) *derivedCache {
	return &derivedCache{
		ttl:   ttl,
		lists: make(map[int64]cachedEntry[ReadingLists]),
		prefs: make(map[int64]cachedEntry[*PreferenceScores]),
		peers: make(map[peerKey]cachedEntry[[]int64]),
	}
}

// fresh reports whether an entry computed at t is still usable.
func (c *derivedCache) fresh(t time.Time) bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(t) < c.ttl
}

func (c *derivedCache) getLists(memberID int64) (ReadingLists, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.lists[memberID]
	if !ok || !c.fresh(entry.cachedAt) {
		return ReadingLists{}, false
	}
	return entry.value, true
}

func (c *derivedCache) setLists(memberID int64, lists ReadingLists) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[memberID] = cachedEntry[ReadingLists]{value: lists, cachedAt: time.Now()}
}

func (c *derivedCache) getPrefs(memberID int64) (*PreferenceScores, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.prefs[memberID]
	if !ok || !c.fresh(entry.cachedAt) {
		return nil, false
	}
	return entry.value, true
}

func (c *derivedCache) setPrefs(memberID int64, prefs *PreferenceScores) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefs[memberID] = cachedEntry[*PreferenceScores]{value: prefs, cachedAt: time.Now()}
}

func (c *derivedCache) getPeers(key peerKey) ([]int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.peers[key]
	if !ok || !c.fresh(entry.cachedAt) {
		return nil, false
	}
	return entry.value, true
}

func (c *derivedCache) setPeers(key peerKey, peerIDs []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.peers[key] = cachedEntry[[]int64]{value: peerIDs, cachedAt: time.Now()}
}

// clear drops every cached entry. Callers invalidate after bulk data loads
// or when reading activity changes underneath the cache.
func (c *derivedCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists = make(map[int64]cachedEntry[ReadingLists])
	c.prefs = make(map[int64]cachedEntry[*PreferenceScores])
	c.peers = make(map[peerKey]cachedEntry[[]int64])
}

// size returns the total number of cached entries across all maps.
func (c *derivedCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lists) + len(c.prefs) + len(c.peers)
}
