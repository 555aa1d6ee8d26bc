package apropos

import "errors"

var (
	// ErrIO names a failed filesystem operation (stat, open, read) on a
	// candidate file. Engine.Reindex does not return it: walk failures
	// are logged and skipped, hash failures are counted in
	// Summary.Errors.
	ErrIO = errors.New("apropos: i/o error")

	// ErrParseFailed names a file that is not a valid mdoc(7) or man(7)
	// page. Engine.Reindex counts such files in Summary.Errors instead
	// of returning it.
	ErrParseFailed = errors.New("apropos: parse failed")

	// ErrHash names a content-hashing failure for a candidate file.
	// Engine.Reindex counts such files in Summary.Errors instead of
	// returning it.
	ErrHash = errors.New("apropos: hashing failed")

	// ErrStoreConstraint names a recoverable store conflict (a path
	// already has a row). store.UpsertDocument resolves it by
	// delete-then-update, so the engine does not return it.
	ErrStoreConstraint = errors.New("apropos: store constraint violation")

	// ErrStoreFatal is returned when a second conflict occurs on the same
	// path within one run, or the schema/transaction layer itself fails.
	ErrStoreFatal = errors.New("apropos: unrecoverable store error")

	// ErrNoRelevantTerms is returned when a query contains nothing but
	// stop words and single characters.
	ErrNoRelevantTerms = errors.New("apropos: no relevant search terms")

	// ErrNotFound is returned when a search yields no matching documents.
	ErrNotFound = errors.New("apropos: no matching documents")

	// ErrClosed names an operation on a closed engine or store; no
	// function in this module returns it.
	ErrClosed = errors.New("apropos: store is closed")
)
