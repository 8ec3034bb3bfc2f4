// Package index holds the inverted index and document index produced by a
// single-pass build over a corpus. Both structures are frozen after
// construction: queries only read them.
package index

import (
	"fmt"
	"sort"
)

// Index is the frozen pair of inverted index and document index.
type Index struct {
	terms  map[string]TermEntry
	docs   map[string][]string
	docIDs []string
}

// New assembles an Index from term entries and per-document token streams,
// enforcing the cross-reference invariant: every posting docID must have a
// document entry and vice versa is checked per-posting (documents with no
// postings are legal only when they have no tokens, which the builder never
// produces, so the check is one-directional).
func New(entries []TermEntry, docs map[string][]string) (*Index, error) {
	terms := make(map[string]TermEntry, len(entries))
	for _, e := range entries {
		sort.Slice(e.Postings, func(i, j int) bool {
			return e.Postings[i].DocID < e.Postings[j].DocID
		})
		for _, p := range e.Postings {
			if _, ok := docs[p.DocID]; !ok {
				return nil, fmt.Errorf("term %q references unknown docID %q", e.Term, p.DocID)
			}
		}
		terms[e.Term] = e
	}
	docIDs := make([]string, 0, len(docs))
	for docID := range docs {
		docIDs = append(docIDs, docID)
	}
	sort.Strings(docIDs)
	return &Index{
		terms:  terms,
		docs:   docs,
		docIDs: docIDs,
	}, nil
}

// Postings returns the postings list for a term.
func (ix *Index) Postings(term string) (PostingList, bool) {
	e, ok := ix.terms[term]
	if !ok {
		return nil, false
	}
	return e.Postings, true
}

// DocFreq returns the number of distinct documents containing the term.
func (ix *Index) DocFreq(term string) int {
	return ix.terms[term].DocFreq
}

// DocTokens returns a document's full token sequence, nil if unknown.
func (ix *Index) DocTokens(docID string) []string {
	return ix.docs[docID]
}

// DocLength returns a document's token count.
func (ix *Index) DocLength(docID string) int {
	return len(ix.docs[docID])
}

// DocIDs returns all docIDs in ascending order. Callers must not mutate the
// returned slice.
func (ix *Index) DocIDs() []string {
	return ix.docIDs
}

// HasDoc reports whether docID is indexed.
func (ix *Index) HasDoc(docID string) bool {
	_, ok := ix.docs[docID]
	return ok
}

// Terms returns every term entry sorted by term, the order the persisted
// index file uses.
func (ix *Index) Terms() []TermEntry {
	entries := make([]TermEntry, 0, len(ix.terms))
	for _, e := range ix.terms {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Term < entries[j].Term
	})
	return entries
}

// NumDocs returns the number of indexed documents.
func (ix *Index) NumDocs() int {
	return len(ix.docIDs)
}

// NumTerms returns the number of distinct terms.
func (ix *Index) NumTerms() int {
	return len(ix.terms)
}
