// Package query implements the QueryEngine: stop-word filtering, search
// construction, and result presentation, grounded on
// original_source/apropos.c's remove_stopwords and search().
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/mandb/apropos/store"
)

// FilterStopwords lowercases and tokenizes raw on whitespace, dropping
// stop words and single characters, and rejoins what remains into an
// FTS MATCH expression. An all-stop-word query returns ErrNoRelevantTerms,
// matching remove_stopwords leaving an empty string.
func FilterStopwords(raw string) (string, error) {
	fields := strings.Fields(raw)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		term := strings.ToLower(f)
		if IsStopWord(term) {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		return "", ErrNoRelevantTerms
	}
	return strings.Join(kept, " "), nil
}

// Searcher is the subset of *store.Store the query engine depends on,
// letting tests substitute a fake without a real database.
type Searcher interface {
	ResetQuery()
	Search(ctx context.Context, matchQuery string, opts store.SearchOptions) ([]store.Result, error)
}

// Engine is the query-side façade: filter, search, present.
type Engine struct {
	searcher Searcher
}

// NewEngine wraps a Searcher (normally a *store.Store).
func NewEngine(s Searcher) *Engine {
	return &Engine{searcher: s}
}

// Run filters raw, executes the search, and returns the ranked rows.
func (e *Engine) Run(ctx context.Context, raw string, opts store.SearchOptions) ([]store.Result, error) {
	filtered, err := FilterStopwords(raw)
	if err != nil {
		return nil, err
	}
	e.searcher.ResetQuery()
	rows, err := e.searcher.Search(ctx, filtered, opts)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	return rows, nil
}

// FormatResult reproduces apropos.c's printed row format:
// "name(section)\tname_desc\nsnippet\n\n".
func FormatResult(r store.Result) string {
	return fmt.Sprintf("%s(%s)\t%s\n%s\n\n", r.Name, r.Section, r.NameDesc, r.Snippet)
}
