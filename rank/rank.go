// Package rank implements the custom TF/IDF scoring function the
// QueryEngine registers as a SQLite scalar ("rank_func"), reproducing
// original_source/apropos.c's rank_func over FTS4 matchinfo() blobs.
package rank

import "math"

// K is the ranking formula's damping constant, apropos.c's literal k = 3.75.
const K = 3.75

// Weights holds the per-column weight vector, indexed the same order
// the twelve-column mandb FTS table lists its text columns after
// section (which carries no weight, matching the original's
// col_weights[icol-1] indexing that starts at column 1).
type Weights struct {
	Name, NameDesc, Description, Library, Synopsis,
	ReturnValues, Environment, Files, ExitStatus,
	Diagnostics, Errors float64
}

// DefaultWeights reproduces original_source/apropos.c's col_weights[].
func DefaultWeights() Weights {
	return Weights{
		Name:         2.0,
		NameDesc:     2.0,
		Description:  0.55,
		Library:      0.25,
		Synopsis:     0.10,
		ReturnValues: 0.001,
		Environment:  0.20,
		Files:        0.01,
		ExitStatus:   0.001,
		Diagnostics:  2.0,
		Errors:       0.05,
	}
}

func (w Weights) at(icol int) float64 {
	switch icol {
	case 1:
		return w.Name
	case 2:
		return w.NameDesc
	case 3:
		return w.Description
	case 4:
		return w.Library
	case 5:
		return w.Synopsis
	case 6:
		return w.ReturnValues
	case 7:
		return w.Environment
	case 8:
		return w.Files
	case 9:
		return w.ExitStatus
	case 10:
		return w.Diagnostics
	case 11:
		return w.Errors
	default:
		return 0
	}
}

// IDF is the per-query scratch state the original threads through
// sqlite3_create_function's user_data: idf is a property of the query
// (how rare each matched term is across the whole corpus), not of any
// one row, so it is computed once from the first row's matchinfo and
// reused for every subsequent row in the same query (invariant: one
// IDF per Search call).
type IDF struct {
	value    float64
	computed bool
}

// Reset clears the accumulator for a new query.
func (i *IDF) Reset() {
	i.value = 0
	i.computed = false
}

// Score computes one row's rank from its matchinfo blob, accumulating
// idf on the first call and reusing it on every later call until Reset.
func Score(blob []byte, w Weights, idf *IDF) (float64, error) {
	mi, err := parseMatchinfo(blob)
	if err != nil {
		return 0, err
	}

	var tf float64
	for iphrase := 0; iphrase < mi.nphrase; iphrase++ {
		for icol := 1; icol < mi.ncol; icol++ {
			hitcount, globalHitCount, docsHitCount := mi.hitStats(iphrase, icol)
			weight := w.at(icol)

			// IDF is scoped by docs_with_hit alone (apropos.c:435-436);
			// doclen/hits_global only zero out TF below, so this must
			// accumulate before those guards or the query's IDF would
			// depend on which row happens to be scored first.
			if !idf.computed && docsHitCount > 0 && mi.ndoc > 0 {
				idf.value += math.Log(float64(mi.ndoc)/float64(docsHitCount)) * weight
			}

			if globalHitCount == 0 {
				continue
			}
			doclen := mi.doclen[icol]
			if doclen == 0 {
				continue
			}

			tf += (float64(hitcount) * weight) / (float64(globalHitCount) * float64(doclen))
		}
	}
	idf.computed = true

	if tf == 0 {
		return 0, nil
	}
	return (tf * idf.value) / (K + tf), nil
}
