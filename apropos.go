// Package apropos wires the filecache, docparse/extract, store, and
// query packages into a single indexing and search façade, the same
// role bbiangul-go-reason/goreason.go plays for its own ingest/query
// pipeline (store.Store, parsers, retrieval all wired from one New).
package apropos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/mandb/apropos/extract"
	"github.com/mandb/apropos/filecache"
	"github.com/mandb/apropos/query"
	"github.com/mandb/apropos/store"
)

// Engine is the entry point for both CLIs: cmd/makemandb drives
// Reindex, cmd/apropos drives Search.
type Engine struct {
	cfg     Config
	store   *store.Store
	queryer *query.Engine
}

// New opens the index at cfg's resolved DBPath and wires the query
// engine on top of it.
func New(cfg Config) (*Engine, error) {
	s, err := store.Open(context.Background(), cfg.resolveDBPath(), cfg.Weights)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	return &Engine{
		cfg:     cfg,
		store:   s,
		queryer: query.NewEngine(s),
	}, nil
}

// Close releases the underlying index handle.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the underlying store for diagnostic access.
func (e *Engine) Store() *store.Store {
	return e.store
}

// ReindexOptions controls one Reindex run, the Go shape of makemandb's
// -f/-l/-o getopt flags.
type ReindexOptions struct {
	// ManRoots overrides the directories walked. Empty means using
	// Config.ManRoots, or discovering roots via `man -p` when that is
	// empty too.
	ManRoots []string
	// Force skips the incremental-update check and reindexes every
	// candidate file, matching makemandb -f.
	Force bool
	// NamesOnly restricts extraction to name and name-description
	// fields, matching makemandb -l.
	NamesOnly bool
	// Optimize runs the FTS4 optimize command after indexing,
	// matching makemandb -o.
	Optimize bool
}

// Summary totals one Reindex run, the Go analog of makemandb's final
// printed "%d pages indexed, %d updated, ..." line.
type Summary struct {
	Total   int
	New     int
	Updated int
	Linked  int
	Pruned  int
	Errors  int
}

// Reindex walks the configured (or discovered) man roots, hashes each
// candidate file, and upserts every new or changed page into the
// index inside a single transaction, matching update_db's one
// BEGIN/COMMIT per run. Per-file parse or hash failures are logged at
// warn level and counted in Summary.Errors, and do not abort the run;
// only a store-level fatal error (a second conflict on the same path,
// or the transaction itself failing) aborts and returns an error.
func (e *Engine) Reindex(ctx context.Context, opts ReindexOptions) (Summary, error) {
	roots := opts.ManRoots
	if len(roots) == 0 {
		roots = e.cfg.ManRoots
	}
	if len(roots) == 0 {
		discovered, err := discoverManRoots(ctx)
		if err != nil {
			return Summary{}, fmt.Errorf("discovering man roots: %w", err)
		}
		roots = discovered
	}

	cache, err := filecache.Walk(roots)
	if err != nil {
		return Summary{}, fmt.Errorf("walking man roots: %w", err)
	}

	var summary Summary
	extractor := extract.NewExtractor(opts.NamesOnly)
	doc := &extract.Document{}
	keep := make(map[string]bool, len(cache.Entries()))

	err = e.store.WithTx(ctx, func(tx *sql.Tx) error {
		for _, entry := range cache.Entries() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			keep[entry.Path] = true
			summary.Total++

			hash, hashErr := filecache.Hash(entry.Path)
			if hashErr != nil {
				slog.Warn("hashing failed, skipping", "path", entry.Path, "error", hashErr)
				summary.Errors++
				continue
			}

			if !opts.Force {
				status, rErr := e.store.NeedsReindex(ctx, entry.Path, hash, entry.Identity)
				if rErr != nil {
					return fmt.Errorf("%w: %v", ErrStoreFatal, rErr)
				}
				switch status {
				case store.StatusUnchanged:
					continue
				case store.StatusHashMatchMetaChanged:
					changed, uErr := e.store.UpdateMetadata(ctx, tx, entry.Path, entry.Identity)
					if uErr != nil {
						return fmt.Errorf("%w: %v", ErrStoreFatal, uErr)
					}
					if changed {
						summary.Updated++
					}
					continue
				}
			}

			parsed, pErr := extractor.Extract(entry.Path, doc)
			if pErr != nil {
				slog.Warn("parse failed, skipping", "path", entry.Path, "error", pErr)
				summary.Errors++
				continue
			}
			if !parsed.Complete() {
				slog.Warn("page missing required fields, skipping", "path", entry.Path)
				summary.Errors++
				continue
			}

			if _, uErr := e.store.UpsertDocument(ctx, tx, parsed, entry.Identity, hash, entry.Path); uErr != nil {
				if errors.Is(uErr, store.ErrFatalConflict) {
					return fmt.Errorf("%w: %v", ErrStoreFatal, uErr)
				}
				slog.Warn("indexing failed, skipping", "path", entry.Path, "error", uErr)
				summary.Errors++
				continue
			}
			summary.New++

			if lErr := e.store.RewriteLinks(ctx, tx, parsed.Name, parsed.Section, parsed.Machine, parsed.Links); lErr != nil {
				return fmt.Errorf("%w: %v", ErrStoreFatal, lErr)
			}
			summary.Linked += len(parsed.Links)
		}

		if !opts.Force {
			pruned, pErr := e.store.PruneAbsent(ctx, tx, keep)
			if pErr != nil {
				return fmt.Errorf("%w: %v", ErrStoreFatal, pErr)
			}
			summary.Pruned = pruned
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	if opts.Optimize {
		if err := e.store.Optimize(ctx); err != nil {
			return summary, fmt.Errorf("optimizing index: %w", err)
		}
	}

	return summary, nil
}

// SearchOptions controls one Search call, the Go shape of apropos's
// -1..-9 section flags and -p pager flag.
type SearchOptions struct {
	Sections []string
	Paged    bool
}

// Search filters stop words out of query, runs it against the index,
// and returns ranked results. An all-stop-word query or a query with
// zero matches both surface as ErrNoRelevantTerms/ErrNotFound so the
// CLI can print the original's "Sorry, no relevant results..." message.
func (e *Engine) Search(ctx context.Context, q string, opts SearchOptions) ([]store.Result, error) {
	rows, err := e.queryer.Run(ctx, q, store.SearchOptions{
		Sections: opts.Sections,
		Paged:    opts.Paged,
		Limit:    e.cfg.ResultLimit,
	})
	if err != nil {
		if errors.Is(err, query.ErrNoRelevantTerms) {
			return nil, ErrNoRelevantTerms
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// discoverManRoots invokes `man -p` and splits its output on newlines
// into traversal roots, matching spec.md §6's external directory
// discovery collaborator.
func discoverManRoots(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "man", "-p").Output()
	if err != nil {
		return nil, fmt.Errorf("running man -p: %w", err)
	}
	var roots []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			roots = append(roots, line)
		}
	}
	return roots, nil
}
