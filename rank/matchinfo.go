package rank

import (
	"encoding/binary"
	"fmt"
)

// matchinfo decodes an FTS4 matchinfo() blob requested with the "pclxn"
// format string: nphrase, ncol, an ncol-length doc-length block, an
// ncol*nphrase*3-length per-phrase/per-column hit-stats block, and a
// trailing total document count. Every value is a native-endian uint32;
// this assumes little-endian, true of every platform go-sqlite3 ships
// prebuilt binaries for.
type matchinfo struct {
	nphrase int
	ncol    int
	doclen  []uint32 // length ncol
	hits    []uint32 // length ncol*nphrase*3, phrase-major
	ndoc    uint32
}

func parseMatchinfo(blob []byte) (*matchinfo, error) {
	if len(blob) < 8 {
		return nil, fmt.Errorf("rank: matchinfo blob too short: %d bytes", len(blob))
	}
	vals := make([]uint32, len(blob)/4)
	for i := range vals {
		vals[i] = binary.LittleEndian.Uint32(blob[i*4 : i*4+4])
	}

	nphrase := int(vals[0])
	ncol := int(vals[1])
	want := 2 + ncol + 3*ncol*nphrase + 1
	if len(vals) < want {
		return nil, fmt.Errorf("rank: matchinfo blob too short for nphrase=%d ncol=%d: have %d want %d", nphrase, ncol, len(vals), want)
	}

	doclen := vals[2 : 2+ncol]
	hits := vals[2+ncol : 2+ncol+3*ncol*nphrase]
	ndoc := vals[2+ncol+3*ncol*nphrase]

	return &matchinfo{nphrase: nphrase, ncol: ncol, doclen: doclen, hits: hits, ndoc: ndoc}, nil
}

// hitStats returns (hits in this row, hits across all rows, rows
// containing a hit) for phrase iphrase, column icol.
func (m *matchinfo) hitStats(iphrase, icol int) (hitcount, globalHitCount, docsHitCount uint32) {
	base := iphrase*m.ncol*3 + icol*3
	return m.hits[base], m.hits[base+1], m.hits[base+2]
}
