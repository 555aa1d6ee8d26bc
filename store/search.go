package store

import (
	"context"
	"fmt"
	"strings"
)

// Result is one ranked hit, the Go shape of apropos.c's printed
// "%s(%s)\t%s\n%s\n\n" row (name, section, name_desc, snippet).
type Result struct {
	Name     string
	Section  string
	NameDesc string
	Snippet  string
	Rank     float64
}

// SearchOptions controls one Search call.
type SearchOptions struct {
	// Sections restricts results to these section digits (1-9). Empty
	// means unrestricted, matching omitting -1..-9 on the CLI.
	Sections []string
	// Paged disables the row limit and the ANSI bold snippet markers,
	// matching apropos -p's two conditional SQL variants.
	Paged bool
	// Limit caps results when not paged. Zero or less uses 10.
	Limit int
}

// Search runs matchQuery (already stop-word filtered) against the FTS4
// table and returns ranked results via rank_func(matchinfo(mandb,
// "pclxn")), matching apropos.c's search() SQL construction exactly:
// an optional section filter, ORDER BY rank DESC, and a LIMIT only when
// not paged. Callers must call ResetQuery before each Search so the IDF
// accumulator starts fresh for this query.
func (s *Store) Search(ctx context.Context, matchQuery string, opts SearchOptions) ([]Result, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT name, section, name_desc, `)
	if opts.Paged {
		sb.WriteString(`snippet(mandb, '', '', '...', -1, 40)`)
	} else {
		sb.WriteString(`snippet(mandb, '`)
		sb.WriteString(ansiBoldOpen)
		sb.WriteString(`', '`)
		sb.WriteString(ansiBoldClose)
		sb.WriteString(`', '...', -1, 40)`)
	}
	sb.WriteString(`, rank_func(matchinfo(mandb, 'pclxn')) AS rank FROM mandb WHERE mandb MATCH ?`)

	args := []any{matchQuery}
	if len(opts.Sections) > 0 {
		sb.WriteString(` AND (`)
		for i, sec := range opts.Sections {
			if i > 0 {
				sb.WriteString(` OR `)
			}
			sb.WriteString(`section LIKE ?`)
			args = append(args, sec)
		}
		sb.WriteString(`)`)
	}
	sb.WriteString(` ORDER BY rank DESC`)
	if !opts.Paged {
		limit := opts.Limit
		if limit <= 0 {
			limit = 10
		}
		sb.WriteString(fmt.Sprintf(` LIMIT %d OFFSET 0`, limit))
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Name, &r.Section, &r.NameDesc, &r.Snippet, &r.Rank); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading search results: %w", err)
	}
	return results, nil
}

// ansiBoldOpen/ansiBoldClose match apropos.c's literal "\033[1m"/"\033[0m"
// snippet markers used in the unpaged, terminal-formatted case.
const (
	ansiBoldOpen  = "\033[1m"
	ansiBoldClose = "\033[0m"
)
