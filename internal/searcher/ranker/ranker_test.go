package ranker

import (
	"reflect"
	"testing"
)

// TestRankOrdersByScoreDescending verifies the primary sort key.
func TestRankOrdersByScoreDescending(t *testing.T) {
	got := Rank(map[string]float64{
		"low":  0.1,
		"high": 0.9,
		"mid":  0.5,
	}, 10)
	want := []ScoredDoc{
		{DocID: "high", Score: 0.9},
		{DocID: "mid", Score: 0.5},
		{DocID: "low", Score: 0.1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}
}

// TestRankTieBreaksByDocID verifies equal scores order by ascending docID so
// output is deterministic.
func TestRankTieBreaksByDocID(t *testing.T) {
	got := Rank(map[string]float64{
		"c": 0.5,
		"a": 0.5,
		"b": 0.5,
	}, 10)
	want := []ScoredDoc{
		{DocID: "a", Score: 0.5},
		{DocID: "b", Score: 0.5},
		{DocID: "c", Score: 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}
}

// TestRankTruncates verifies the limit caps the result length.
func TestRankTruncates(t *testing.T) {
	scores := map[string]float64{"a": 0.9, "b": 0.8, "c": 0.7, "d": 0.6}
	got := Rank(scores, 2)
	want := []ScoredDoc{
		{DocID: "a", Score: 0.9},
		{DocID: "b", Score: 0.8},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}
}

// TestRankFewerThanLimit verifies a limit beyond the result count returns
// everything.
func TestRankFewerThanLimit(t *testing.T) {
	got := Rank(map[string]float64{"only": 1.0}, 5)
	if len(got) != 1 {
		t.Errorf("Rank returned %d results, want 1", len(got))
	}
}

// TestRankEmpty verifies an empty score map yields an empty, non-nil slice.
func TestRankEmpty(t *testing.T) {
	got := Rank(nil, 3)
	if got == nil || len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty slice", got)
	}
}
