package docparse

import "errors"

// ErrUnknownDialect is returned when neither a .Dt nor a .TH header is
// found, the tokenizer's analog of mparse_result returning both ASTs nil.
var ErrUnknownDialect = errors.New("docparse: not a man(7) or mdoc(7) page")
