// Package search provides fuzzy filtering over library content.
package search

import (
	"sort"
	"strings"

	lithammer "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"ntsync/internal/domain"
)

// Result is one matched item with highlight metadata.
type Result struct {
	Item           domain.ListItem
	MatchedIndexes []int // character positions that matched, for highlighting
	Score          int   // higher is better
}

// Index implements fuzzy.Source over indexed items so filtering does not
// allocate a fresh title slice per keystroke.
type Index struct {
	items       []domain.ListItem
	lowerTitles []string
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of indexed items (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.items) }

// NewIndex builds a search index from the given items.
func NewIndex(items []domain.ListItem) *Index {
	idx := &Index{
		items:       items,
		lowerTitles: make([]string, len(items)),
	}
	for i, item := range items {
		idx.lowerTitles[i] = strings.ToLower(item.GetTitle())
	}
	return idx
}

// Filter returns items matching the query, best match first. An empty
// query returns every item in index order with no highlights.
func (idx *Index) Filter(query string) []Result {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		results := make([]Result, len(idx.items))
		for i, item := range idx.items {
			results[i] = Result{Item: item}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Item:           idx.items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Rank orders entries by closeness to the query using substring position
// then edit distance. Entries that do not fuzzy-match at all are dropped.
func Rank(query string, entries []domain.VideoEntry) []domain.VideoEntry {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return entries
	}

	type ranked struct {
		entry domain.VideoEntry
		score int
	}

	var out []ranked
	for _, e := range entries {
		title := strings.ToLower(e.Title)
		if !lithammer.MatchFold(query, title) && !strings.Contains(title, query) {
			continue
		}
		out = append(out, ranked{entry: e, score: matchScore(title, query)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].score < out[j].score
	})

	entriesOut := make([]domain.VideoEntry, len(out))
	for i, r := range out {
		entriesOut[i] = r.entry
	}
	return entriesOut
}

// matchScore calculates a match score for ranking, lower is better.
func matchScore(title, query string) int {
	if title == query {
		return 0
	}
	if strings.HasPrefix(title, query) {
		return 10
	}
	if strings.Contains(title, query) {
		return 50
	}
	return 100 + lithammer.LevenshteinDistance(query, title)
}
