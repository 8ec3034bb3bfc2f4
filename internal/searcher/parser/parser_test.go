package parser

import (
	"errors"
	"reflect"
	"testing"

	pkgerrors "github.com/zonesearch/zonesearch/pkg/errors"
)

// TestParseBareKeywords verifies a plain query yields one keyword atom per
// term, normalised.
func TestParseBareKeywords(t *testing.T) {
	q, err := Parse("Quick brown Fox!", ':')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []Atom{
		{Keywords: []string{"quick"}},
		{Keywords: []string{"brown"}},
		{Keywords: []string{"fox"}},
	}
	if !reflect.DeepEqual(q.Atoms, want) {
		t.Errorf("Atoms = %v, want %v", q.Atoms, want)
	}
}

// TestParsePhrases covers multi-token, single-token, and mixed queries.
func TestParsePhrases(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []Atom
	}{
		{
			name: "multi token phrase",
			raw:  ":fox jumps:",
			want: []Atom{{Keywords: []string{"fox", "jumps"}, IsPhrase: true}},
		},
		{
			name: "single token phrase",
			raw:  ":fox:",
			want: []Atom{{Keywords: []string{"fox"}, IsPhrase: true}},
		},
		{
			name: "phrase between keywords",
			raw:  "lazy :quick brown fox: dog",
			want: []Atom{
				{Keywords: []string{"lazy"}},
				{Keywords: []string{"quick", "brown", "fox"}, IsPhrase: true},
				{Keywords: []string{"dog"}},
			},
		},
		{
			name: "two phrases",
			raw:  ":fox jumps: :lazy dog:",
			want: []Atom{
				{Keywords: []string{"fox", "jumps"}, IsPhrase: true},
				{Keywords: []string{"lazy", "dog"}, IsPhrase: true},
			},
		},
		{
			name: "phrase keywords normalised",
			raw:  ":Quick Fox!:",
			want: []Atom{{Keywords: []string{"quick", "fox"}, IsPhrase: true}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Parse(tc.raw, ':')
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.raw, err)
			}
			if !reflect.DeepEqual(q.Atoms, tc.want) {
				t.Errorf("Parse(%q) atoms = %v, want %v", tc.raw, q.Atoms, tc.want)
			}
		})
	}
}

// TestParseMalformed verifies every malformed-delimiter shape is rejected.
func TestParseMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"space after opening delimiter", ": fox jumps:"},
		{"space before closing delimiter", ":fox jumps :"},
		{"unterminated phrase", ":fox jumps"},
		{"closing without opening", "fox jumps:"},
		{"free-standing delimiter", "fox : jumps"},
		{"delimiter inside term", "fox:jumps"},
		{"lone delimiter", ":"},
		{"phrase opened inside phrase", ":fox :jumps lazy:"},
		{"empty phrase", "::"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.raw, ':'); !errors.Is(err, pkgerrors.ErrMalformedPhrase) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedPhrase", tc.raw, err)
			}
		})
	}
}

// TestParseCustomDelimiter verifies the delimiter rune is configurable; the
// default delimiter is then an ordinary character.
func TestParseCustomDelimiter(t *testing.T) {
	q, err := Parse("/fox jumps/", '/')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(q.Atoms) != 1 || !q.Atoms[0].IsPhrase {
		t.Fatalf("Atoms = %v, want one phrase atom", q.Atoms)
	}
	if want := []string{"fox", "jumps"}; !reflect.DeepEqual(q.Atoms[0].Keywords, want) {
		t.Errorf("phrase keywords = %v, want %v", q.Atoms[0].Keywords, want)
	}
}

// TestQueryKeywords verifies keyword expansion keeps duplicates and query
// order.
func TestQueryKeywords(t *testing.T) {
	q, err := Parse("fox :fox jumps: fox", ':')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []string{"fox", "fox", "jumps", "fox"}
	if got := q.Keywords(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords = %v, want %v", got, want)
	}
}

// TestQueryPhrases verifies only phrase atoms are returned.
func TestQueryPhrases(t *testing.T) {
	q, err := Parse("lazy :fox jumps: dog", ':')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	phrases := q.Phrases()
	if len(phrases) != 1 {
		t.Fatalf("Phrases = %v, want exactly one", phrases)
	}
	if want := []string{"fox", "jumps"}; !reflect.DeepEqual(phrases[0].Keywords, want) {
		t.Errorf("phrase keywords = %v, want %v", phrases[0].Keywords, want)
	}
}

// TestParseEmptyQuery verifies whitespace-only input parses to zero atoms.
func TestParseEmptyQuery(t *testing.T) {
	q, err := Parse("   ", ':')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(q.Atoms) != 0 {
		t.Errorf("Atoms = %v, want none", q.Atoms)
	}
}

// TestParsePunctuationOnlyPhrase verifies a phrase whose words normalise to
// nothing is dropped rather than kept as an empty atom.
func TestParsePunctuationOnlyPhrase(t *testing.T) {
	q, err := Parse(":!!!: fox", ':')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []Atom{{Keywords: []string{"fox"}}}
	if !reflect.DeepEqual(q.Atoms, want) {
		t.Errorf("Atoms = %v, want %v", q.Atoms, want)
	}
}
