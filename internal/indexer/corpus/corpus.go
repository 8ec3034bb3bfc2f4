// Package corpus defines the zoned document model and the JSON corpus
// decoder. A corpus file is a JSON array of objects; each object carries a
// "doc_id" member plus one or more named content zones. Zone order matters
// for token positions, so decoding walks the JSON token stream instead of
// unmarshalling into Go maps.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// DocIDZone is the name of the member that holds the document identifier.
const DocIDZone = "doc_id"

// Zone is one named sub-field of a document.
type Zone struct {
	Name    string
	Content string
}

// Document is one corpus entry: a docID plus its content zones in file
// order. HasDocID distinguishes an absent doc_id member from one whose
// content is empty.
type Document struct {
	DocID    string
	HasDocID bool
	Zones    []Zone
}

// ZoneCount counts all zones including the docID zone.
func (d Document) ZoneCount() int {
	n := len(d.Zones)
	if d.HasDocID {
		n++
	}
	return n
}

// ReadFile loads and decodes a corpus file.
func ReadFile(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()
	docs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding corpus file %s: %w", path, err)
	}
	return docs, nil
}

// Decode parses a JSON array of zoned documents, preserving zone order.
func Decode(r io.Reader) ([]Document, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	var docs []Document
	for dec.More() {
		doc, err := decodeDocument(dec)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(docs), err)
		}
		docs = append(docs, doc)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return docs, nil
}

func decodeDocument(dec *json.Decoder) (Document, error) {
	var doc Document
	if err := expectDelim(dec, '{'); err != nil {
		return doc, err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return doc, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return doc, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return doc, fmt.Errorf("zone %q: %w", key, err)
		}
		content, err := zoneContent(value)
		if err != nil {
			return doc, fmt.Errorf("zone %q: %w", key, err)
		}
		if key == DocIDZone {
			doc.DocID = content
			doc.HasDocID = true
			continue
		}
		doc.Zones = append(doc.Zones, Zone{Name: key, Content: content})
	}
	return doc, expectDelim(dec, '}')
}

// zoneContent renders a JSON zone value as text. Numbers are docIDs in most
// corpora, so they format without an exponent.
func zoneContent(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported zone value type %T", value)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
