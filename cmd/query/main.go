// Command query answers one ranked query against a persisted index folder.
//
// Usage:
//
//	query -index /data/index -k 10 fox :quick brown:
//
// Phrases are wrapped in ':' delimiters, flush against the first and last
// phrase term. Output lines, in order: the number of documents considered
// for phrase matching, the number of documents with a non-zero cosine
// score, then the top-k "docID<TAB>score" rows in descending score order.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/zonesearch/zonesearch/internal/indexer/store"
	"github.com/zonesearch/zonesearch/internal/searcher/executor"
	"github.com/zonesearch/zonesearch/pkg/logger"
)

const phraseDelimiter = ':'

func main() {
	indexDir := flag.String("index", "", "path to the index folder")
	k := flag.Int("k", 0, "number of results to return")
	logLevel := flag.String("logLevel", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	logger.Setup(*logLevel, "text")

	rawQuery := strings.Join(flag.Args(), " ")
	if *indexDir == "" || rawQuery == "" {
		fmt.Fprintln(os.Stderr, "usage: query -index <index folder> -k <result count> <query terms>")
		os.Exit(2)
	}
	if *k <= 0 {
		fmt.Fprintln(os.Stderr, "error: result count -k must be greater than 0")
		os.Exit(2)
	}

	ix, err := store.Open(*indexDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	exec := executor.New(ix, phraseDelimiter)
	result, err := exec.Execute(context.Background(), rawQuery, *k)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Number of documents considered: %d\n", result.Considered)
	fmt.Printf("Number of documents with non-zero cosine scores: %d\n", result.Matched)
	for _, doc := range result.Results {
		fmt.Printf("%s\t%g\n", doc.DocID, doc.Score)
	}
}
