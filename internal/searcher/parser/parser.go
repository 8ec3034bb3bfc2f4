// Package parser splits a raw query string into an ordered sequence of
// atoms: bare keywords and delimiter-enclosed phrases. Keywords are
// normalised with the same rules the indexer applies to zone text.
package parser

import (
	"fmt"
	"strings"

	"github.com/zonesearch/zonesearch/internal/indexer/tokenizer"
	pkgerrors "github.com/zonesearch/zonesearch/pkg/errors"
)

// Atom is one unit of a parsed query: a single keyword, or a phrase whose
// keywords must match contiguously in order.
type Atom struct {
	Keywords []string
	IsPhrase bool
}

// Query is the parsed form of a raw query string.
type Query struct {
	Raw   string
	Atoms []Atom
}

// Keywords returns every keyword occurrence across all atoms, phrases
// expanded, in query order. Duplicates are kept: each literal occurrence
// contributes its own scoring weight.
func (q Query) Keywords() []string {
	var out []string
	for _, atom := range q.Atoms {
		out = append(out, atom.Keywords...)
	}
	return out
}

// Phrases returns only the phrase atoms.
func (q Query) Phrases() []Atom {
	var out []Atom
	for _, atom := range q.Atoms {
		if atom.IsPhrase {
			out = append(out, atom)
		}
	}
	return out
}

// Parse splits raw on whitespace and groups delimiter-enclosed spans into
// phrase atoms. The delimiter must sit flush against the first and last
// phrase token; a free-standing delimiter, a delimiter in the middle of a
// word, or an unclosed phrase is ErrMalformedPhrase.
func Parse(raw string, delim rune) (Query, error) {
	q := Query{Raw: raw}
	fields := strings.Fields(raw)

	var phrase []string
	inPhrase := false
	for _, field := range fields {
		startsWith := strings.HasPrefix(field, string(delim))
		endsWith := strings.HasSuffix(field, string(delim))
		trimmed := strings.Trim(field, string(delim))
		if strings.ContainsRune(trimmed, delim) {
			return Query{}, malformed(delim, "delimiter inside term %q", field)
		}

		switch {
		case startsWith && endsWith:
			// Single-token phrase, e.g. ":fox:". A bare delimiter means a
			// space crept between the delimiter and the phrase.
			if inPhrase {
				return Query{}, malformed(delim, "phrase opened twice at %q", field)
			}
			if trimmed == "" || len(field) < len(trimmed)+2 {
				return Query{}, malformed(delim, "empty phrase at %q", field)
			}
			if atom := phraseAtom([]string{trimmed}); len(atom.Keywords) > 0 {
				q.Atoms = append(q.Atoms, atom)
			}
		case startsWith:
			if inPhrase {
				return Query{}, malformed(delim, "phrase opened twice at %q", field)
			}
			if trimmed == "" {
				return Query{}, malformed(delim, "free-standing delimiter %q", field)
			}
			phrase = append(phrase[:0], trimmed)
			inPhrase = true
		case endsWith:
			if !inPhrase {
				return Query{}, malformed(delim, "phrase closed without opening at %q", field)
			}
			if trimmed == "" {
				return Query{}, malformed(delim, "free-standing delimiter %q", field)
			}
			phrase = append(phrase, trimmed)
			if atom := phraseAtom(phrase); len(atom.Keywords) > 0 {
				q.Atoms = append(q.Atoms, atom)
			}
			phrase = nil
			inPhrase = false
		case inPhrase:
			phrase = append(phrase, field)
		default:
			if kw := tokenizer.Normalize(field); kw != "" {
				q.Atoms = append(q.Atoms, Atom{Keywords: []string{kw}})
			}
		}
	}
	if inPhrase {
		return Query{}, malformed(delim, "unterminated phrase in %q", raw)
	}
	return q, nil
}

func phraseAtom(words []string) Atom {
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if kw := tokenizer.Normalize(w); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return Atom{Keywords: keywords, IsPhrase: true}
}

func malformed(delim rune, format string, args ...any) error {
	return fmt.Errorf("%w: %s (phrase delimiter %q must be flush against the first and last phrase term)",
		pkgerrors.ErrMalformedPhrase, fmt.Sprintf(format, args...), delim)
}
