package extract

import (
	"fmt"
	"os"

	"github.com/mandb/apropos/docparse"
)

// extractor holds the one flag that changes routing behavior across an
// entire indexing run (the -l "names only" mode), threaded through every
// handler instead of a package-level global.
type extractor struct {
	limit bool
}

// Extractor walks a parsed mdoc(7)/man(7) page into a Document. One
// Extractor can be reused across an entire corpus; callers should reuse
// a single Document via Reset between calls to avoid reallocating its
// section buffers for every file.
type Extractor struct {
	e extractor
}

// NewExtractor creates an Extractor. limit restricts extraction to the
// name and name-description fields only, matching makemandb's -l flag.
func NewExtractor(limit bool) *Extractor {
	return &Extractor{e: extractor{limit: limit}}
}

// Extract reads path, drives docparse, and populates dst (or a fresh
// Document if dst is nil) with the extracted fields.
func (x *Extractor) Extract(path string, dst *Document) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return x.ExtractString(string(data), dst)
}

// ExtractString drives docparse directly over already-read source,
// populating dst (or a fresh Document if dst is nil).
func (x *Extractor) ExtractString(src string, dst *Document) (*Document, error) {
	mdoc, man, err := docparse.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	if dst == nil {
		dst = &Document{}
	} else {
		dst.Reset()
	}

	switch {
	case mdoc != nil:
		extractMdoc(&x.e, mdoc, dst)
	case man != nil:
		extractMan(&x.e, man, dst)
	default:
		return nil, ErrParseFailed
	}

	return dst, nil
}
