package tokenizer

import (
	"reflect"
	"testing"
)

// TestNormalize verifies punctuation stripping and lower-casing of single
// words.
func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fox", "fox"},
		{"jumps!", "jumps"},
		{"(quick)", "quick"},
		{"don't", "dont"},
		{"snake_case", "snake_case"},
		{"42nd", "42nd"},
		{"!!!", ""},
		{"", ""},
		{"Café", "café"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestTokenize verifies split, normalisation, and position assignment.
func TestTokenize(t *testing.T) {
	tokens := Tokenize("The quick,  brown Fox!")
	want := []Token{
		{Term: "the", Position: 0},
		{Term: "quick", Position: 1},
		{Term: "brown", Position: 2},
		{Term: "fox", Position: 3},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize() = %v, want %v", tokens, want)
	}
}

// TestTokenizeSkipsEmptyTerms verifies that words reduced to nothing by
// normalisation consume no position.
func TestTokenizeSkipsEmptyTerms(t *testing.T) {
	tokens := Tokenize("fox !!! jumps")
	want := []Token{
		{Term: "fox", Position: 0},
		{Term: "jumps", Position: 1},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize() = %v, want %v", tokens, want)
	}
}

// TestTerms verifies the position-free variant matches Tokenize term-for-term.
func TestTerms(t *testing.T) {
	text := "The quick brown Fox jumps... over!"
	terms := Terms(text)
	tokens := Tokenize(text)
	if len(terms) != len(tokens) {
		t.Fatalf("Terms returned %d terms, Tokenize returned %d tokens", len(terms), len(tokens))
	}
	for i, term := range terms {
		if term != tokens[i].Term {
			t.Errorf("term %d: Terms=%q Tokenize=%q", i, term, tokens[i].Term)
		}
	}
}

// TestTokenizeEmptyInput verifies that whitespace-only input yields no tokens.
func TestTokenizeEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		if got := Tokenize(in); len(got) != 0 {
			t.Errorf("Tokenize(%q) = %v, want empty", in, got)
		}
	}
}
