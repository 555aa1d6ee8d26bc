//go:build cgo

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mandb/apropos/extract"
	"github.com/mandb/apropos/filecache"
	"github.com/mandb/apropos/rank"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(context.Background(), dbPath, rank.DefaultWeights())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDocument(name string) *extract.Document {
	x := extract.NewExtractor(false)
	src := `.Dd January 1, 2026
.Dt ` + name + ` 1
.Os
.Sh NAME
.Nm ` + name + `
.Nd a test utility
.Sh DESCRIPTION
This is the description of ` + name + `.
`
	doc, err := x.ExtractString(src, nil)
	if err != nil {
		panic(err)
	}
	return doc
}

func TestOpenAppliesSchema(t *testing.T) {
	s := newTestStore(t)
	var count int
	row := s.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE name IN ('mandb_meta', 'mandb_links')`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected mandb_meta and mandb_links tables, got count=%d", count)
	}
}

func TestUpsertAndSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	doc := sampleDocument("grep")
	ident := filecache.Identity{Device: 1, Inode: 2, Mtime: 100}

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := s.UpsertDocument(ctx, tx, doc, ident, "hash1", "/man/grep.1")
		return err
	})
	if err != nil {
		t.Fatalf("upserting document: %v", err)
	}

	s.ResetQuery()
	results, err := s.Search(ctx, "grep", SearchOptions{})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Name != "grep" {
		t.Fatalf("unexpected result name: %q", results[0].Name)
	}
}

func TestNeedsReindexStates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	doc := sampleDocument("awk")
	ident := filecache.Identity{Device: 1, Inode: 5, Mtime: 200}

	status, err := s.NeedsReindex(ctx, "/man/awk.1", "hashA", ident)
	if err != nil {
		t.Fatalf("needs reindex: %v", err)
	}
	if status != StatusNew {
		t.Fatalf("expected StatusNew for unseen path, got %v", status)
	}

	if err := s.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := s.UpsertDocument(ctx, tx, doc, ident, "hashA", "/man/awk.1")
		return err
	}); err != nil {
		t.Fatalf("upserting: %v", err)
	}

	status, err = s.NeedsReindex(ctx, "/man/awk.1", "hashA", ident)
	if err != nil {
		t.Fatalf("needs reindex: %v", err)
	}
	if status != StatusUnchanged {
		t.Fatalf("expected StatusUnchanged, got %v", status)
	}

	movedIdent := filecache.Identity{Device: 1, Inode: 9, Mtime: 201}
	status, err = s.NeedsReindex(ctx, "/man/awk.1", "hashA", movedIdent)
	if err != nil {
		t.Fatalf("needs reindex: %v", err)
	}
	if status != StatusHashMatchMetaChanged {
		t.Fatalf("expected StatusHashMatchMetaChanged, got %v", status)
	}
}

func TestUpsertConflictUpdatesInPlace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ident := filecache.Identity{Device: 2, Inode: 2, Mtime: 300}

	first := sampleDocument("sed")
	if err := s.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := s.UpsertDocument(ctx, tx, first, ident, "hashOld", "/man/sed.1")
		return err
	}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := sampleDocument("sed")
	newIdent := filecache.Identity{Device: 2, Inode: 2, Mtime: 301}
	if err := s.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := s.UpsertDocument(ctx, tx, second, newIdent, "hashNew", "/man/sed.1")
		return err
	}); err != nil {
		t.Fatalf("second upsert (conflict path): %v", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mandb_meta WHERE path = ?`, "/man/sed.1").Scan(&count); err != nil {
		t.Fatalf("counting metadata rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 metadata row after conflict, got %d", count)
	}

	var hash string
	if err := s.db.QueryRowContext(ctx, `SELECT content_hash FROM mandb_meta WHERE path = ?`, "/man/sed.1").Scan(&hash); err != nil {
		t.Fatalf("reading hash: %v", err)
	}
	if hash != "hashNew" {
		t.Fatalf("expected updated hash, got %q", hash)
	}
}

func TestPruneAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ident := filecache.Identity{Device: 3, Inode: 3, Mtime: 400}
	doc := sampleDocument("tail")

	if err := s.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := s.UpsertDocument(ctx, tx, doc, ident, "hashTail", "/man/tail.1")
		return err
	}); err != nil {
		t.Fatalf("upserting: %v", err)
	}

	var removed int
	if err := s.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		removed, err = s.PruneAbsent(ctx, tx, map[string]bool{})
		return err
	}); err != nil {
		t.Fatalf("pruning: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned row, got %d", removed)
	}
}
