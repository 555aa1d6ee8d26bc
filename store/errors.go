package store

import "errors"

// ErrFatalConflict is returned when a path conflicts a second time
// within one run, the Go analog of insert_into_db's second
// SQLITE_CONSTRAINT failure calling errx(EXIT_FAILURE, ...).
var ErrFatalConflict = errors.New("store: unrecoverable conflict on path")
