package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zonesearch/zonesearch/internal/indexer/index"
	pkgerrors "github.com/zonesearch/zonesearch/pkg/errors"
)

// Open loads a persisted index folder back into memory. A missing folder or
// missing index file maps to ErrIndexFilesNotFound.
func Open(dir string) (*index.Index, error) {
	entries, err := readIndexFile(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, err
	}
	docs, err := readDocIndexFile(filepath.Join(dir, DocIndexFile))
	if err != nil {
		return nil, err
	}
	ix, err := index.New(entries, docs)
	if err != nil {
		return nil, fmt.Errorf("index folder %s is inconsistent: %w", dir, err)
	}
	return ix, nil
}

func readIndexFile(path string) ([]index.TermEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrIndexFilesNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var entries []index.TermEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s:%d: expected 3 tab-separated columns", path, lineNo)
		}
		docFreq, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: document frequency: %w", path, lineNo, err)
		}
		postings, err := decodePostings(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		entries = append(entries, index.TermEntry{
			Term:     fields[0],
			DocFreq:  docFreq,
			Postings: postings,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return entries, nil
}

func readDocIndexFile(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrIndexFilesNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	docs := make(map[string][]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected 2 tab-separated columns", path, lineNo)
		}
		docs[fields[0]] = strings.Fields(fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return docs, nil
}

// decodePostings parses "docID:p1,p2;docID:p3".
func decodePostings(s string) (index.PostingList, error) {
	if s == "" {
		return nil, fmt.Errorf("empty postings list")
	}
	groups := strings.Split(s, ";")
	postings := make(index.PostingList, 0, len(groups))
	for _, group := range groups {
		sep := strings.LastIndexByte(group, ':')
		if sep < 0 {
			return nil, fmt.Errorf("malformed posting %q", group)
		}
		docID := group[:sep]
		if docID == "" {
			return nil, fmt.Errorf("malformed posting %q: empty docID", group)
		}
		rawPositions := strings.Split(group[sep+1:], ",")
		positions := make([]int, 0, len(rawPositions))
		for _, raw := range rawPositions {
			pos, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("malformed position in %q: %w", group, err)
			}
			positions = append(positions, pos)
		}
		postings = append(postings, index.Posting{
			DocID:     docID,
			Positions: positions,
		})
	}
	return postings, nil
}
