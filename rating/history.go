// Package rating computes confidence-scored skill tiers from a player's
// rolling match history. Everything here is pure; the rating store owns
// persistence.
package rating

import "github.com/rallypoint-app/rallypoint/models"

// HistoryCapacity bounds the rolling result buffer; the oldest entry is
// evicted once it is full.
const HistoryCapacity = 50

// History is a fixed-capacity, most-recent-first result buffer. The zero
// value is ready to use.
type History struct {
	results []models.RecentResult
}

func NewHistory(results []models.RecentResult) History {
	h := History{results: make([]models.RecentResult, 0, HistoryCapacity)}
	for _, r := range results {
		if len(h.results) == HistoryCapacity {
			break
		}
		h.results = append(h.results, r)
	}
	return h
}

// Push prepends a result, evicting the oldest entry when the buffer is full.
// Index 0 stays the most recent result, which is what the recency weights
// index against.
func (h *History) Push(result models.RecentResult) {
	if len(h.results) == HistoryCapacity {
		h.results = h.results[:HistoryCapacity-1]
	}
	h.results = append([]models.RecentResult{result}, h.results...)
}

// Results returns the buffer ordered most recent first.
func (h *History) Results() []models.RecentResult {
	out := make([]models.RecentResult, len(h.results))
	copy(out, h.results)
	return out
}

func (h *History) Len() int { return len(h.results) }

// UniqueOpponents counts distinct opponents across the buffer.
func (h *History) UniqueOpponents() int {
	seen := make(map[string]struct{}, len(h.results))
	for _, r := range h.results {
		seen[r.OpponentID] = struct{}{}
	}
	return len(seen)
}
