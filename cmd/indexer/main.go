// Command indexer builds a static inverted index from a JSON corpus of
// zoned documents and writes it as an index folder of flat TSV files.
//
// Usage:
//
//	indexer -corpus corpus.json -out /data [-logLevel info]
//
// Any corpus-document violation (duplicate or missing docID, fewer than two
// zones, empty zone content) aborts the whole build; no partial index is
// written.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zonesearch/zonesearch/internal/indexer/corpus"
	"github.com/zonesearch/zonesearch/internal/indexer/index"
	"github.com/zonesearch/zonesearch/internal/indexer/store"
	"github.com/zonesearch/zonesearch/pkg/logger"
)

func main() {
	corpusPath := flag.String("corpus", "", "path to the JSON corpus file")
	outPath := flag.String("out", "", "parent path for the generated index folder")
	logLevel := flag.String("logLevel", "info", "log level (debug, info, warn, error)")
	logFormat := flag.String("logFormat", "text", "log format (text, json)")
	flag.Parse()

	logger.Setup(*logLevel, *logFormat)

	if *corpusPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: indexer -corpus <corpus file> -out <index parent path>")
		os.Exit(2)
	}

	start := time.Now()
	docs, err := corpus.ReadFile(*corpusPath)
	if err != nil {
		slog.Error("failed to read corpus", "path", *corpusPath, "error", err)
		os.Exit(1)
	}
	slog.Info("corpus loaded", "path", *corpusPath, "documents", len(docs))

	builder := index.NewBuilder()
	for i, doc := range docs {
		if err := builder.Add(doc); err != nil {
			slog.Error("invalid corpus document, aborting build",
				"document", i,
				"doc_id", doc.DocID,
				"error", err,
			)
			os.Exit(1)
		}
	}
	ix, err := builder.Build()
	if err != nil {
		slog.Error("failed to build index", "error", err)
		os.Exit(1)
	}
	slog.Info("index built",
		"documents", ix.NumDocs(),
		"terms", ix.NumTerms(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	dir, err := store.Write(*outPath, ix)
	if err != nil {
		slog.Error("failed to write index folder", "error", err)
		os.Exit(1)
	}
	slog.Info("index written", "dir", dir)
}
