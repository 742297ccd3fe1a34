package search

import (
	"testing"

	"ntsync/internal/domain"
)

func testItems() []domain.ListItem {
	titles := []string{
		"React Best Practices 2024",
		"JavaScript ES2024 Features",
		"Docker for Developers",
		"Kubernetes Fundamentals",
	}
	items := make([]domain.ListItem, len(titles))
	for i, title := range titles {
		items[i] = &domain.VideoEntry{ID: title, Title: title}
	}
	return items
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	idx := NewIndex(testItems())

	results := idx.Filter("")
	if len(results) != 4 {
		t.Fatalf("expected all 4 items, got %d", len(results))
	}
	if results[0].MatchedIndexes != nil {
		t.Error("expected no highlights for empty query")
	}
}

func TestFilterMatchesSubsequence(t *testing.T) {
	idx := NewIndex(testItems())

	results := idx.Filter("dckr")
	if len(results) != 1 {
		t.Fatalf("expected 1 match for %q, got %d", "dckr", len(results))
	}
	if results[0].Item.GetTitle() != "Docker for Developers" {
		t.Errorf("unexpected match %q", results[0].Item.GetTitle())
	}
	if len(results[0].MatchedIndexes) == 0 {
		t.Error("expected highlight positions for fuzzy match")
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	idx := NewIndex(testItems())

	if got := idx.Filter("KUBERNETES"); len(got) != 1 {
		t.Fatalf("expected case-insensitive match, got %d results", len(got))
	}
}

func TestFilterNoMatch(t *testing.T) {
	idx := NewIndex(testItems())

	if got := idx.Filter("zzzzzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestRankPrefersPrefix(t *testing.T) {
	entries := []domain.VideoEntry{
		{ID: "1", Title: "Advanced Docker Patterns"},
		{ID: "2", Title: "Docker for Developers"},
	}

	ranked := Rank("docker", entries)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked entries, got %d", len(ranked))
	}
	if ranked[0].ID != "2" {
		t.Errorf("expected prefix match ranked first, got %q", ranked[0].Title)
	}
}

func TestRankDropsNonMatches(t *testing.T) {
	entries := []domain.VideoEntry{
		{ID: "1", Title: "GraphQL Complete Guide"},
		{ID: "2", Title: "Docker for Developers"},
	}

	ranked := Rank("graphql", entries)
	if len(ranked) != 1 || ranked[0].ID != "1" {
		t.Fatalf("expected only the GraphQL entry, got %v", ranked)
	}
}

func TestRankEmptyQueryPassesThrough(t *testing.T) {
	entries := []domain.VideoEntry{{ID: "1", Title: "Anything"}}
	if got := Rank("", entries); len(got) != 1 {
		t.Fatalf("expected pass-through for empty query, got %d", len(got))
	}
}
