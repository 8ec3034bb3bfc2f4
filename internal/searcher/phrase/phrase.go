// Package phrase filters the document space down to the candidate set: the
// documents containing every query phrase as a contiguous, in-order
// positional match.
package phrase

import (
	"github.com/zonesearch/zonesearch/internal/indexer/index"
	"github.com/zonesearch/zonesearch/internal/searcher/parser"
)

// Resolve intersects, over all phrase atoms, the documents satisfying each
// phrase. A query without phrase atoms considers every indexed document.
// The returned slice is sorted by docID; its length is the
// "documents considered" metric.
func Resolve(ix *index.Index, q parser.Query) []string {
	phrases := q.Phrases()
	if len(phrases) == 0 {
		all := ix.DocIDs()
		out := make([]string, len(all))
		copy(out, all)
		return out
	}

	var candidates []string
	for i, atom := range phrases {
		matched := resolveOne(ix, atom.Keywords)
		if i == 0 {
			candidates = matched
		} else {
			candidates = intersectSorted(candidates, matched)
		}
		if len(candidates) == 0 {
			return nil
		}
	}
	return candidates
}

// resolveOne returns the sorted docIDs satisfying a single phrase: keyword i
// must occur at position p+i for some start p.
func resolveOne(ix *index.Index, keywords []string) []string {
	lists := make([]index.PostingList, len(keywords))
	for i, kw := range keywords {
		postings, ok := ix.Postings(kw)
		if !ok {
			return nil
		}
		lists[i] = postings
	}

	// Walk the first keyword's postings; every other list is docID-sorted,
	// so per-document lookup is a binary search.
	var matched []string
	for _, first := range lists[0] {
		docPositions := make([][]int, len(keywords))
		docPositions[0] = first.Positions
		found := true
		for i := 1; i < len(lists); i++ {
			p, ok := lists[i].Find(first.DocID)
			if !ok {
				found = false
				break
			}
			docPositions[i] = p.Positions
		}
		if found && hasAdjacentRun(docPositions) {
			matched = append(matched, first.DocID)
		}
	}
	return matched
}

// hasAdjacentRun reports whether some start position p has p+i present in
// positions[i] for every i. All position lists are ascending, so each list
// keeps its own cursor and the whole check is a linear merge, not a cross
// product.
func hasAdjacentRun(positions [][]int) bool {
	if len(positions) == 1 {
		return len(positions[0]) > 0
	}
	cursors := make([]int, len(positions))
	for _, p := range positions[0] {
		match := true
		for i := 1; i < len(positions); i++ {
			want := p + i
			list := positions[i]
			for cursors[i] < len(list) && list[cursors[i]] < want {
				cursors[i]++
			}
			if cursors[i] >= len(list) {
				return false
			}
			if list[cursors[i]] != want {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func intersectSorted(a, b []string) []string {
	out := make([]string, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
