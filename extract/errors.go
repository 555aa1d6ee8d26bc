package extract

import "errors"

// ErrIO is returned when the source file cannot be read.
var ErrIO = errors.New("extract: i/o error")

// ErrParseFailed is returned when docparse cannot identify a dialect.
var ErrParseFailed = errors.New("extract: parse failed")

// ErrIncompleteDocument is returned when a page is missing a required
// field (name, name description, or section) after extraction,
// matching insert_into_db's validation in the original.
var ErrIncompleteDocument = errors.New("extract: document missing required fields")
