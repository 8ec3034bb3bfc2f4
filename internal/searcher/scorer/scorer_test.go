package scorer

import (
	"math"
	"testing"

	"github.com/zonesearch/zonesearch/internal/indexer/corpus"
	"github.com/zonesearch/zonesearch/internal/indexer/index"
)

const epsilon = 1e-12

func buildIndex(t *testing.T, docs map[string]string) *index.Index {
	t.Helper()
	b := index.NewBuilder()
	for docID, body := range docs {
		err := b.Add(corpus.Document{
			DocID:    docID,
			HasDocID: true,
			Zones:    []corpus.Zone{{Name: "body", Content: body}},
		})
		if err != nil {
			t.Fatalf("Add(%s) failed: %v", docID, err)
		}
	}
	ix, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ix
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// TestScoreWeightPerKeyword verifies each keyword contributes 1/n and the
// accumulated weight is divided by document length.
func TestScoreWeightPerKeyword(t *testing.T) {
	ix := buildIndex(t, map[string]string{
		"1": "fox jumps",
		"2": "fox runs",
		"3": "jumps runs",
	})
	scores := Score(ix, []string{"fox", "jumps"}, ix.DocIDs())

	// Doc 1 contains both keywords: (0.5 + 0.5) / 2 tokens.
	// Docs 2 and 3 contain one each: 0.5 / 2 tokens.
	want := map[string]float64{
		"1": 0.5,
		"2": 0.25,
		"3": 0.25,
	}
	if len(scores) != len(want) {
		t.Fatalf("scores = %v, want %v", scores, want)
	}
	for docID, w := range want {
		if !approxEqual(scores[docID], w) {
			t.Errorf("score[%s] = %v, want %v", docID, scores[docID], w)
		}
	}
}

// TestScoreDuplicateKeywords verifies repeated occurrences in the query each
// carry their own 1/n weight.
func TestScoreDuplicateKeywords(t *testing.T) {
	ix := buildIndex(t, map[string]string{
		"1": "fox jumps",
		"2": "jumps runs",
	})
	scores := Score(ix, []string{"fox", "fox", "jumps"}, ix.DocIDs())

	// n = 3. Doc 1 collects 1/3 twice for fox plus 1/3 for jumps, over 2
	// tokens; doc 2 collects 1/3 for jumps, over 2 tokens.
	if !approxEqual(scores["1"], 0.5) {
		t.Errorf("score[1] = %v, want 0.5", scores["1"])
	}
	if !approxEqual(scores["2"], 1.0/6.0) {
		t.Errorf("score[2] = %v, want 1/6", scores["2"])
	}
}

// TestScoreRestrictedCandidates verifies documents outside the candidate set
// never score, even when they contain the keywords.
func TestScoreRestrictedCandidates(t *testing.T) {
	ix := buildIndex(t, map[string]string{
		"in":  "fox jumps",
		"out": "fox jumps",
	})
	scores := Score(ix, []string{"fox"}, []string{"in"})
	if _, ok := scores["out"]; ok {
		t.Error("document outside candidate set was scored")
	}
	if !approxEqual(scores["in"], 0.5) {
		t.Errorf("score[in] = %v, want 0.5", scores["in"])
	}
}

// TestScoreOmitsZeroScores verifies documents matching no keyword are absent
// from the result map.
func TestScoreOmitsZeroScores(t *testing.T) {
	ix := buildIndex(t, map[string]string{
		"hit":  "fox jumps",
		"miss": "lazy dog",
	})
	scores := Score(ix, []string{"fox"}, ix.DocIDs())
	if _, ok := scores["miss"]; ok {
		t.Error("zero-score document present in result map")
	}
	if len(scores) != 1 {
		t.Errorf("scores = %v, want exactly one entry", scores)
	}
}

// TestScoreUnknownKeyword verifies unindexed keywords contribute nothing but
// still dilute the per-keyword weight.
func TestScoreUnknownKeyword(t *testing.T) {
	ix := buildIndex(t, map[string]string{"1": "fox jumps"})
	scores := Score(ix, []string{"fox", "unicorn"}, ix.DocIDs())
	if !approxEqual(scores["1"], 0.25) {
		t.Errorf("score[1] = %v, want 0.25", scores["1"])
	}
}

// TestScoreTermFrequencyInsensitive verifies a document gains weight once per
// query keyword occurrence, not per document occurrence.
func TestScoreTermFrequencyInsensitive(t *testing.T) {
	ix := buildIndex(t, map[string]string{"1": "fox fox fox fox"})
	scores := Score(ix, []string{"fox"}, ix.DocIDs())
	if !approxEqual(scores["1"], 0.25) {
		t.Errorf("score[1] = %v, want 0.25", scores["1"])
	}
}

// TestScoreEmptyInputs verifies nil results for empty keyword or candidate
// sets.
func TestScoreEmptyInputs(t *testing.T) {
	ix := buildIndex(t, map[string]string{"1": "fox"})
	if got := Score(ix, nil, ix.DocIDs()); got != nil {
		t.Errorf("Score with no keywords = %v, want nil", got)
	}
	if got := Score(ix, []string{"fox"}, nil); got != nil {
		t.Errorf("Score with no candidates = %v, want nil", got)
	}
}
