//go:build cgo

package apropos

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writePage(t *testing.T, dir, filename, name string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	src := `.Dd January 1, 2026
.Dt ` + name + ` 1
.Os
.Sh NAME
.Nm ` + name + `
.Nd a test utility for ` + name + `
.Sh DESCRIPTION
This describes the ` + name + ` command in detail.
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	manDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.ManRoots = []string{manDir}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e, manDir
}

func TestReindexAndSearch(t *testing.T) {
	e, manDir := newTestEngine(t)
	writePage(t, manDir, "grep.1", "grep")
	writePage(t, manDir, "sed.1", "sed")

	summary, err := e.Reindex(context.Background(), ReindexOptions{})
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if summary.New != 2 {
		t.Fatalf("expected 2 new documents, got %+v", summary)
	}
	if summary.Errors != 0 {
		t.Fatalf("expected no errors, got %+v", summary)
	}

	results, err := e.Search(context.Background(), "grep", SearchOptions{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "grep" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestReindexIsIncremental(t *testing.T) {
	e, manDir := newTestEngine(t)
	writePage(t, manDir, "awk.1", "awk")

	if _, err := e.Reindex(context.Background(), ReindexOptions{}); err != nil {
		t.Fatalf("first reindex: %v", err)
	}
	second, err := e.Reindex(context.Background(), ReindexOptions{})
	if err != nil {
		t.Fatalf("second reindex: %v", err)
	}
	if second.New != 0 {
		t.Fatalf("expected no new documents on unchanged second run, got %+v", second)
	}
}

func TestReindexPrunesRemovedFiles(t *testing.T) {
	e, manDir := newTestEngine(t)
	path := writePage(t, manDir, "tail.1", "tail")

	if _, err := e.Reindex(context.Background(), ReindexOptions{}); err != nil {
		t.Fatalf("first reindex: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing page: %v", err)
	}

	summary, err := e.Reindex(context.Background(), ReindexOptions{})
	if err != nil {
		t.Fatalf("second reindex: %v", err)
	}
	if summary.Pruned != 1 {
		t.Fatalf("expected 1 pruned document, got %+v", summary)
	}

	if _, err := e.Search(context.Background(), "tail", SearchOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after pruning, got %v", err)
	}
}

func TestSearchNoRelevantTerms(t *testing.T) {
	e, manDir := newTestEngine(t)
	writePage(t, manDir, "ls.1", "ls")
	if _, err := e.Reindex(context.Background(), ReindexOptions{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	_, err := e.Search(context.Background(), "the a of", SearchOptions{})
	if !errors.Is(err, ErrNoRelevantTerms) {
		t.Fatalf("expected ErrNoRelevantTerms, got %v", err)
	}
}
