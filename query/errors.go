package query

import "errors"

// ErrNoRelevantTerms is returned when a query contains nothing but
// stop words and single characters, the Go analog of apropos.c's
// "COLLAPSED TO NOTHING" message after remove_stopwords.
var ErrNoRelevantTerms = errors.New("query: no relevant search terms")
