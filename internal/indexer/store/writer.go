// Package store persists a frozen index as two flat tab-separated files
// inside an index folder and loads them back. The wire format is textual:
//
//	index.tsv:    term <TAB> docFreq <TAB> docID:p1,p2;docID:p3
//	docIndex.tsv: docID <TAB> space-joined token sequence
//
// Rows are sorted by term and docID respectively; postings are sorted by
// docID with ascending positions.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zonesearch/zonesearch/internal/indexer/index"
)

const (
	// FolderName is the directory created under the output parent path.
	FolderName = "index"
	// IndexFile is the inverted-index file name.
	IndexFile = "index.tsv"
	// DocIndexFile is the document-index file name.
	DocIndexFile = "docIndex.tsv"
)

// Write creates "<parent>/index" and writes both index files into it,
// returning the folder path. Each file goes through a .tmp rename so a
// partially written index is never left behind. An existing index folder is
// an error.
func Write(parent string, ix *index.Index) (string, error) {
	dir := filepath.Join(parent, FolderName)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("index folder %s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating index folder: %w", err)
	}

	if err := writeAtomically(filepath.Join(dir, IndexFile), func(w *bufio.Writer) error {
		for _, entry := range ix.Terms() {
			row := fmt.Sprintf("%s\t%d\t%s\n", entry.Term, entry.DocFreq, encodePostings(entry.Postings))
			if _, err := w.WriteString(row); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("writing %s: %w", IndexFile, err)
	}

	if err := writeAtomically(filepath.Join(dir, DocIndexFile), func(w *bufio.Writer) error {
		for _, docID := range ix.DocIDs() {
			row := fmt.Sprintf("%s\t%s\n", docID, strings.Join(ix.DocTokens(docID), " "))
			if _, err := w.WriteString(row); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return "", fmt.Errorf("writing %s: %w", DocIndexFile, err)
	}

	return dir, nil
}

// encodePostings renders a docID-sorted postings list as
// "docID:p1,p2;docID:p3".
func encodePostings(postings index.PostingList) string {
	var b strings.Builder
	for i, p := range postings {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.DocID)
		b.WriteByte(':')
		for j, pos := range p.Positions {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(pos))
		}
	}
	return b.String()
}

func writeAtomically(path string, fill func(w *bufio.Writer) error) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
