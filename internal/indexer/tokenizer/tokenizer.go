// Package tokenizer turns raw zone text into normalised terms. It splits on
// whitespace, strips punctuation from each word, and lower-cases the result.
// Index build and query parsing share this normalisation so that query
// keywords line up with indexed terms.
package tokenizer

import (
	"strings"
	"unicode"
)

// Token is a single normalised term and its 0-based ordinal position within
// the text it was produced from.
type Token struct {
	Term     string
	Position int
}

// Tokenize breaks text into normalised tokens in left-to-right order.
// Positions are local to the given text; callers indexing multiple zones
// offset them to form the per-document stream.
func Tokenize(text string) []Token {
	words := strings.Fields(text)
	tokens := make([]Token, 0, len(words))
	pos := 0
	for _, word := range words {
		term := Normalize(word)
		if term == "" {
			continue
		}
		tokens = append(tokens, Token{
			Term:     term,
			Position: pos,
		})
		pos++
	}
	return tokens
}

// Terms is Tokenize without position bookkeeping.
func Terms(text string) []string {
	words := strings.Fields(text)
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if term := Normalize(word); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// Normalize lower-cases a single word and drops every rune that is not a
// letter, digit, or underscore. It returns "" when nothing survives.
func Normalize(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
