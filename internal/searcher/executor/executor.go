// Package executor runs a parsed query end-to-end against a loaded index:
// phrase resolution, cosine scoring, and ranking.
package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zonesearch/zonesearch/internal/indexer/index"
	"github.com/zonesearch/zonesearch/internal/searcher/parser"
	"github.com/zonesearch/zonesearch/internal/searcher/phrase"
	"github.com/zonesearch/zonesearch/internal/searcher/ranker"
	"github.com/zonesearch/zonesearch/internal/searcher/scorer"
	pkgerrors "github.com/zonesearch/zonesearch/pkg/errors"
)

// QueryResult carries the two query-time metrics and the ranked documents.
type QueryResult struct {
	Query      string             `json:"query"`
	Considered int                `json:"documents_considered"`
	Matched    int                `json:"documents_matched"`
	Results    []ranker.ScoredDoc `json:"results"`
}

// Executor answers queries against one frozen index.
type Executor struct {
	idx    *index.Index
	delim  rune
	logger *slog.Logger
}

// New creates an Executor over a loaded index with the given phrase
// delimiter.
func New(idx *index.Index, delim rune) *Executor {
	return &Executor{
		idx:    idx,
		delim:  delim,
		logger: slog.Default().With("component", "query-executor"),
	}
}

// Execute parses rawQuery and returns the top-k ranked documents along with
// the considered and matched counts. k must be positive.
func (e *Executor) Execute(ctx context.Context, rawQuery string, k int) (*QueryResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: result count must be greater than 0, got %d",
			pkgerrors.ErrInvalidArguments, k)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := parser.Parse(rawQuery, e.delim)
	if err != nil {
		return nil, err
	}

	candidates := phrase.Resolve(e.idx, q)
	scores := scorer.Score(e.idx, q.Keywords(), candidates)
	ranked := ranker.Rank(scores, k)

	result := &QueryResult{
		Query:      rawQuery,
		Considered: len(candidates),
		Matched:    len(scores),
		Results:    ranked,
	}
	e.logger.Debug("query executed",
		"query", rawQuery,
		"atoms", len(q.Atoms),
		"considered", result.Considered,
		"matched", result.Matched,
		"returned", len(ranked),
	)
	return result, nil
}

// Index exposes the underlying index for health reporting.
func (e *Executor) Index() *index.Index {
	return e.idx
}
