// Package benchmark contains Go benchmarks for the index builder, the
// persisted index store, and the query pipeline, measuring throughput and
// allocation behaviour.
package benchmark

import (
	"fmt"
	"testing"

	"github.com/zonesearch/zonesearch/internal/indexer/corpus"
	"github.com/zonesearch/zonesearch/internal/indexer/index"
	"github.com/zonesearch/zonesearch/internal/indexer/store"
)

func benchDocument(i int) corpus.Document {
	return corpus.Document{
		DocID:    fmt.Sprintf("doc-%d", i),
		HasDocID: true,
		Zones: []corpus.Zone{
			{Name: "title", Content: fmt.Sprintf("benchmark document %d", i)},
			{Name: "body", Content: "the quick brown fox jumps over the lazy dog while the index builder records every term position for phrase resolution"},
		},
	}
}

func buildBenchIndex(b *testing.B, numDocs int) *index.Index {
	b.Helper()
	builder := index.NewBuilder()
	for i := 0; i < numDocs; i++ {
		if err := builder.Add(benchDocument(i)); err != nil {
			b.Fatalf("Add failed: %v", err)
		}
	}
	ix, err := builder.Build()
	if err != nil {
		b.Fatalf("Build failed: %v", err)
	}
	return ix
}

// BenchmarkBuilderAdd measures per-document insert throughput.
func BenchmarkBuilderAdd(b *testing.B) {
	builder := index.NewBuilder()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := builder.Add(benchDocument(i)); err != nil {
			b.Fatalf("Add failed: %v", err)
		}
	}
}

// BenchmarkBuild measures the freeze of a 10 000 document builder.
func BenchmarkBuild(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		builder := index.NewBuilder()
		for j := 0; j < 10000; j++ {
			if err := builder.Add(benchDocument(j)); err != nil {
				b.Fatalf("Add failed: %v", err)
			}
		}
		b.StartTimer()
		if _, err := builder.Build(); err != nil {
			b.Fatalf("Build failed: %v", err)
		}
	}
}

// BenchmarkStoreWrite measures serializing a 1 000 document index to disk.
func BenchmarkStoreWrite(b *testing.B) {
	ix := buildBenchIndex(b, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.Write(b.TempDir(), ix); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}
}

// BenchmarkStoreOpen measures loading a 1 000 document index from disk.
func BenchmarkStoreOpen(b *testing.B) {
	ix := buildBenchIndex(b, 1000)
	dir, err := store.Write(b.TempDir(), ix)
	if err != nil {
		b.Fatalf("Write failed: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.Open(dir); err != nil {
			b.Fatalf("Open failed: %v", err)
		}
	}
}
