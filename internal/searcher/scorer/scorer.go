// Package scorer computes weighted cosine-similarity scores over the
// phrase-filtered candidate set, accumulating per-keyword weights the
// FastCosineScore way: one postings walk per query keyword, no per-document
// term vectors.
package scorer

import (
	"github.com/zonesearch/zonesearch/internal/indexer/index"
)

// Score accumulates 1/n per keyword occurrence (n = total keyword
// occurrences, bare and phrase-expanded alike) into every candidate document
// whose postings contain the keyword, then divides each accumulated score by
// the document's token count. Documents with zero accumulated weight are
// omitted.
func Score(ix *index.Index, keywords []string, candidates []string) map[string]float64 {
	if len(keywords) == 0 || len(candidates) == 0 {
		return nil
	}

	inCandidates := make(map[string]struct{}, len(candidates))
	for _, docID := range candidates {
		inCandidates[docID] = struct{}{}
	}

	weight := 1.0 / float64(len(keywords))
	accumulated := make(map[string]float64)
	for _, kw := range keywords {
		postings, ok := ix.Postings(kw)
		if !ok {
			continue
		}
		for _, p := range postings {
			if _, ok := inCandidates[p.DocID]; ok {
				accumulated[p.DocID] += weight
			}
		}
	}

	scores := make(map[string]float64, len(accumulated))
	for docID, acc := range accumulated {
		if length := ix.DocLength(docID); length > 0 {
			scores[docID] = acc / float64(length)
		}
	}
	return scores
}
