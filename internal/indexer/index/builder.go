package index

import (
	"log/slog"

	"github.com/zonesearch/zonesearch/internal/indexer/corpus"
	"github.com/zonesearch/zonesearch/internal/indexer/tokenizer"
	pkgerrors "github.com/zonesearch/zonesearch/pkg/errors"
)

// Builder accumulates documents one at a time and freezes them into an
// immutable Index. It exclusively owns the mutable maps during construction;
// a single Add pass over the corpus runs in O(total tokens).
type Builder struct {
	postings map[string]map[string]*Posting
	docs     map[string][]string
	logger   *slog.Logger
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		postings: make(map[string]map[string]*Posting),
		docs:     make(map[string][]string),
		logger:   slog.Default().With("component", "index-builder"),
	}
}

// Add validates one document and merges its tokens into the indexes. A
// validation failure is returned as the matching error kind and leaves the
// document unindexed; callers abort the whole build on any error.
func (b *Builder) Add(doc corpus.Document) error {
	if err := b.validate(doc); err != nil {
		return err
	}

	tokens := make([]string, 0)
	for _, zone := range doc.Zones {
		tokens = append(tokens, tokenizer.Terms(zone.Content)...)
	}
	for pos, term := range tokens {
		byDoc, ok := b.postings[term]
		if !ok {
			byDoc = make(map[string]*Posting)
			b.postings[term] = byDoc
		}
		p, ok := byDoc[doc.DocID]
		if !ok {
			p = &Posting{DocID: doc.DocID}
			byDoc[doc.DocID] = p
		}
		p.Positions = append(p.Positions, pos)
	}
	b.docs[doc.DocID] = tokens

	b.logger.Debug("document indexed",
		"doc_id", doc.DocID,
		"zones", len(doc.Zones),
		"token_count", len(tokens),
	)
	return nil
}

// Build freezes the builder into a read-only Index. The builder must not be
// used after Build returns.
func (b *Builder) Build() (*Index, error) {
	entries := make([]TermEntry, 0, len(b.postings))
	for term, byDoc := range b.postings {
		list := make(PostingList, 0, len(byDoc))
		for _, p := range byDoc {
			list = append(list, *p)
		}
		entries = append(entries, TermEntry{
			Term:     term,
			DocFreq:  len(byDoc),
			Postings: list,
		})
	}
	ix, err := New(entries, b.docs)
	if err != nil {
		return nil, err
	}
	b.postings = nil
	b.docs = nil
	return ix, nil
}

func (b *Builder) validate(doc corpus.Document) error {
	if doc.ZoneCount() < 2 {
		return pkgerrors.ErrInsufficientZones
	}
	if doc.HasDocID && doc.DocID == "" {
		return pkgerrors.ErrEmptyZone
	}
	for _, zone := range doc.Zones {
		if zone.Content == "" {
			return pkgerrors.ErrEmptyZone
		}
	}
	if !doc.HasDocID {
		return pkgerrors.ErrMissingDocID
	}
	if _, exists := b.docs[doc.DocID]; exists {
		return pkgerrors.ErrDuplicateDocID
	}
	return nil
}
