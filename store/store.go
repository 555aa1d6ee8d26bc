// Package store implements the IndexStore: a durable SQLite-backed
// inverted index with an incremental update protocol, grounded on
// original_source/makemandb.c's update_db/insert_into_db and on
// original_source/apropos.c's search(), restructured around
// database/sql the way bbiangul-go-reason/store/store.go structures
// its own SQLite access.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/mandb/apropos/extract"
	"github.com/mandb/apropos/filecache"
	"github.com/mandb/apropos/rank"
	"github.com/mattn/go-sqlite3"
)

var driverSeq int64

// Store wraps the mandb SQLite index: the FTS4 table, its metadata and
// links tables, and the registered rank_func scalar used for scoring.
type Store struct {
	db      *sql.DB
	idf     *rank.IDF
	weights rank.Weights
}

// Open creates (or reopens) the index at path and registers rank_func
// against a private driver instance scoped to this Store, exactly as
// original_source/apropos.c calls sqlite3_create_function once per
// connection with &idf as user_data. The connection pool is pinned to
// a single connection, matching spec.md §5's single-threaded,
// single-transaction-per-run concurrency model and letting one IDF
// accumulator be safely shared across an entire query's rows.
func Open(ctx context.Context, path string, weights rank.Weights) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	idf := &rank.IDF{}
	driverName := fmt.Sprintf("sqlite3_apropos_%d", atomic.AddInt64(&driverSeq, 1))
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("rank_func", func(blob []byte) float64 {
				score, err := rank.Score(blob, weights, idf)
				if err != nil {
					return 0
				}
				return score
			}, true)
		},
	})

	dsn := path + "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000"
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging index: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	s := &Store{db: db, idf: idf, weights: weights}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ResetQuery clears the shared IDF accumulator; the query engine calls
// this once per Search, matching the original computing idf fresh for
// every new apropos invocation.
func (s *Store) ResetQuery() {
	s.idf.Reset()
}

// inTx runs fn inside a transaction, committing on success and rolling
// back on any error, the same helper shape as the teacher's store.go.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// WithTx runs an entire indexing run inside one transaction, matching
// the original's single BEGIN/COMMIT around the whole traversal.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.inTx(ctx, fn)
}

// Optimize runs FTS4's optimize command, the Go analog of makemandb's
// -o flag triggering `INSERT INTO mandb(mandb) VALUES('optimize')`.
func (s *Store) Optimize(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO mandb(mandb) VALUES('optimize')`)
	return err
}

// ReindexStatus classifies a candidate file against the existing index.
type ReindexStatus int

const (
	// StatusNew means no indexed row has this content hash: a new file,
	// or a file whose content changed since it was indexed.
	StatusNew ReindexStatus = iota
	// StatusUnchanged means the hash matches and identity is unchanged.
	StatusUnchanged
	// StatusHashMatchMetaChanged means the content hash is already
	// indexed (e.g. a hardlink or a touched-but-unmodified file) but the
	// device/inode/mtime identity differs and should be updated.
	StatusHashMatchMetaChanged
)

// NeedsReindex looks up hash first, regardless of path, mirroring
// check_md5 (makemandb.c:558): the hash being present under any file
// already indexed means the content doesn't need reparsing, even if
// that file is a different path (a copy, not caught by the filecache's
// (device,inode) dedup). Only once a row with this hash is found does
// its recorded identity get compared against ident to tell a genuine
// no-op from a moved/copied file.
func (s *Store) NeedsReindex(ctx context.Context, path, hash string, ident filecache.Identity) (ReindexStatus, error) {
	var (
		device, inode, mtime int64
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT device, inode, mtime FROM mandb_meta WHERE content_hash = ? LIMIT 1`, hash)
	switch err := row.Scan(&device, &inode, &mtime); err {
	case sql.ErrNoRows:
		return StatusNew, nil
	case nil:
		// fall through
	default:
		return StatusNew, fmt.Errorf("looking up hash for %s: %w", path, err)
	}

	if device == int64(ident.Device) && inode == int64(ident.Inode) && mtime == ident.Mtime {
		return StatusUnchanged, nil
	}
	return StatusHashMatchMetaChanged, nil
}

// UpdateMetadata refreshes the (device, inode, mtime) identity for an
// unchanged-content file, returning whether any row actually changed
// (the original's sqlite3_total_changes delta, used to tell a genuine
// metadata update from a true hardlink no-op).
func (s *Store) UpdateMetadata(ctx context.Context, tx *sql.Tx, path string, ident filecache.Identity) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE mandb_meta SET device = ?, inode = ?, mtime = ? WHERE path = ? AND (device <> ? OR inode <> ? OR mtime <> ?)`,
		ident.Device, ident.Inode, ident.Mtime, path, ident.Device, ident.Inode, ident.Mtime)
	if err != nil {
		return false, fmt.Errorf("updating metadata for %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected for %s: %w", path, err)
	}
	return n > 0, nil
}

// UpsertDocument inserts doc's extracted fields as a new mandb row and
// links it to path's metadata. If path already has a row (a second
// encounter inside the same run, or a genuinely modified file from a
// prior run), the old mandb row is deleted and mandb_meta is updated in
// place, preserving the metadata row rather than deleting and
// recreating it, matching insert_into_db's SQLITE_CONSTRAINT recovery.
// A second conflict on the same path is treated as fatal, exactly as
// the original's second insert_into_db failure calls errx().
func (s *Store) UpsertDocument(ctx context.Context, tx *sql.Tx, doc *extract.Document, ident filecache.Identity, hash, path string) (int64, error) {
	if !doc.Complete() {
		return 0, fmt.Errorf("%s: %w", path, extract.ErrIncompleteDocument)
	}

	docID, err := insertMandbRow(ctx, tx, doc)
	if err != nil {
		return 0, fmt.Errorf("inserting index row for %s: %w", path, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO mandb_meta (device, inode, mtime, path, content_hash, doc_id) VALUES (?, ?, ?, ?, ?, ?)`,
		ident.Device, ident.Inode, ident.Mtime, path, hash, docID)
	if err == nil {
		return docID, nil
	}
	if !isUniqueConstraint(err) {
		return 0, fmt.Errorf("inserting metadata for %s: %w", path, err)
	}

	// Path already has a metadata row: delete its old index row and
	// repoint the existing metadata row at the freshly inserted one.
	var oldDocID int64
	if scanErr := tx.QueryRowContext(ctx, `SELECT doc_id FROM mandb_meta WHERE path = ?`, path).Scan(&oldDocID); scanErr != nil {
		return 0, fmt.Errorf("%w: looking up prior doc_id for %s: %v", ErrFatalConflict, path, scanErr)
	}
	if _, delErr := tx.ExecContext(ctx, `DELETE FROM mandb WHERE rowid = ?`, oldDocID); delErr != nil {
		return 0, fmt.Errorf("%w: deleting prior index row for %s: %v", ErrFatalConflict, path, delErr)
	}

	res, updErr := tx.ExecContext(ctx,
		`UPDATE mandb_meta SET device = ?, inode = ?, mtime = ?, content_hash = ?, doc_id = ? WHERE path = ?`,
		ident.Device, ident.Inode, ident.Mtime, hash, docID, path)
	if updErr != nil {
		return 0, fmt.Errorf("%w: updating metadata for %s: %v", ErrFatalConflict, path, updErr)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, fmt.Errorf("%w: second conflict updating metadata for %s", ErrFatalConflict, path)
	}

	return docID, nil
}

func insertMandbRow(ctx context.Context, tx *sql.Tx, doc *extract.Document) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO mandb (section, name, name_desc, description, library, synopsis,
			return_values, environment, files, exit_status, diagnostics, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.Section, doc.Name, doc.NameDesc, doc.Description(), doc.Library(), doc.Synopsis(),
		doc.ReturnValues(), doc.Environment(), doc.Files(), doc.ExitStatus(), doc.Diagnostics(), doc.Errors())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RewriteLinks replaces name's cross-reference aliases, grounded on
// insert_into_db's final loop populating mandb_links per comma-separated
// link name.
func (s *Store) RewriteLinks(ctx context.Context, tx *sql.Tx, name, section, machine string, links []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM mandb_links WHERE target_name = ?`, name); err != nil {
		return fmt.Errorf("clearing links for %s: %w", name, err)
	}
	for _, link := range links {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mandb_links (link_name, target_name, section, machine) VALUES (?, ?, ?, ?)`,
			link, name, section, machine); err != nil {
			return fmt.Errorf("inserting link %s -> %s: %w", link, name, err)
		}
	}
	return nil
}

// PruneAbsent deletes every indexed document whose path is not present
// in keep, matching update_db's end-of-run DELETE pair against
// metadb.file_cache, skipped entirely when makemandb runs with -f.
func (s *Store) PruneAbsent(ctx context.Context, tx *sql.Tx, keep map[string]bool) (int, error) {
	rows, err := tx.QueryContext(ctx, `SELECT path, doc_id FROM mandb_meta`)
	if err != nil {
		return 0, fmt.Errorf("listing metadata for prune: %w", err)
	}
	type staleRow struct {
		path  string
		docID int64
	}
	var stale []staleRow
	for rows.Next() {
		var path string
		var docID int64
		if err := rows.Scan(&path, &docID); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning metadata row: %w", err)
		}
		if !keep[path] {
			stale = append(stale, staleRow{path, docID})
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("reading metadata rows: %w", err)
	}
	rows.Close()

	for _, sr := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM mandb WHERE rowid = ?`, sr.docID); err != nil {
			return 0, fmt.Errorf("pruning index row for %s: %w", sr.path, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM mandb_meta WHERE path = ?`, sr.path); err != nil {
			return 0, fmt.Errorf("pruning metadata row for %s: %w", sr.path, err)
		}
	}
	return len(stale), nil
}

func isUniqueConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
