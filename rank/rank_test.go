package rank

import (
	"encoding/binary"
	"testing"
)

// buildMatchinfo constructs a synthetic "pclxn" blob for one phrase and
// ncol columns, for a row that hits column icol hitcount times, with
// the given global stats and total document count.
func buildMatchinfo(ncol, icol int, hitcount, globalHitCount, docsHitCount, ndoc uint32, doclen []uint32) []byte {
	nphrase := 1
	vals := make([]uint32, 2+ncol+3*ncol*nphrase+1)
	vals[0] = uint32(nphrase)
	vals[1] = uint32(ncol)
	copy(vals[2:2+ncol], doclen)
	base := 2 + ncol + icol*3
	vals[base] = hitcount
	vals[base+1] = globalHitCount
	vals[base+2] = docsHitCount
	vals[len(vals)-1] = ndoc

	buf := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], v)
	}
	return buf
}

func TestScorePositiveForMatchingColumn(t *testing.T) {
	ncol := 12
	doclen := make([]uint32, ncol)
	for i := range doclen {
		doclen[i] = 20
	}
	blob := buildMatchinfo(ncol, 1 /* name column */, 2, 5, 3, 100, doclen)

	var idf IDF
	score, err := Score(blob, DefaultWeights(), &idf)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score <= 0 {
		t.Fatalf("expected positive score, got %v", score)
	}
}

func TestScoreZeroWhenNoHits(t *testing.T) {
	ncol := 12
	doclen := make([]uint32, ncol)
	blob := buildMatchinfo(ncol, 1, 0, 0, 0, 100, doclen)

	var idf IDF
	score, err := Score(blob, DefaultWeights(), &idf)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected zero score for no hits, got %v", score)
	}
}

func TestIDFCachedAcrossRows(t *testing.T) {
	ncol := 12
	doclen := make([]uint32, ncol)
	for i := range doclen {
		doclen[i] = 20
	}
	blobA := buildMatchinfo(ncol, 1, 3, 5, 3, 100, doclen)
	blobB := buildMatchinfo(ncol, 1, 1, 5, 3, 100, doclen)

	var idf IDF
	if _, err := Score(blobA, DefaultWeights(), &idf); err != nil {
		t.Fatalf("score a: %v", err)
	}
	if !idf.computed {
		t.Fatal("expected idf to be marked computed after first row")
	}
	cached := idf.value

	if _, err := Score(blobB, DefaultWeights(), &idf); err != nil {
		t.Fatalf("score b: %v", err)
	}
	if idf.value != cached {
		t.Fatalf("expected idf to stay cached across rows: %v != %v", idf.value, cached)
	}
}

func TestColumnWeightOrdering(t *testing.T) {
	w := DefaultWeights()
	if w.at(1) != w.Name || w.at(11) != w.Errors {
		t.Fatal("weight lookup by column index does not match struct fields")
	}
	if w.at(0) != 0 || w.at(12) != 0 {
		t.Fatal("expected zero weight for section column and out-of-range index")
	}
}

func TestParseMatchinfoTooShort(t *testing.T) {
	if _, err := parseMatchinfo([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for undersized blob")
	}
}
