// Package distributed implements the multi-rank rendering protocol:
// strided primitive ownership, an odd-even transposition sort of
// primitives across ranks by depth, and a tree-reduction combine of
// per-rank framebuffers using jump-doubling.
package distributed

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/sh"
)

// recordFloats is the number of float32 slots one marshaled Record
// occupies: valid(1) + depth(1) + xyz(4) + cov3d(9) + opacity(1) +
// coeff(16*3).
const recordFloats = 1 + 1 + 4 + 9 + 1 + 16*3

// recordBytes is the wire size of one Record.
const recordBytes = recordFloats * 4

// Record is one primitive plus its sort key, exchanged whole between
// ranks during the odd-even transposition sort so that after sorting a
// rank can render directly from the records it ends up holding.
type Record struct {
	Valid   bool
	Depth   float32
	XYZ     linalg.Vec4
	Cov3D   linalg.Mat3
	Color   sh.Harmonic
}

// sentinel is the padding record used to equalize per-rank counts
// before the odd-even network runs; it always sorts to the end and is
// dropped after the sort converges.
func sentinel() Record {
	return Record{Valid: false, Depth: float32(math.Inf(1))}
}

func marshal(r Record, buf []byte) {
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off*4:], math.Float32bits(v))
	}
	validF := float32(0)
	if r.Valid {
		validF = 1
	}
	put(0, validF)
	put(1, r.Depth)
	for i := 0; i < 4; i++ {
		put(2+i, r.XYZ[i])
	}
	off := 6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			put(off, r.Cov3D[i][j])
			off++
		}
	}
	put(off, r.Color.Opacity)
	off++
	for i := 0; i < 16; i++ {
		for k := 0; k < 3; k++ {
			put(off, r.Color.Coeff[i][k])
			off++
		}
	}
}

func unmarshal(buf []byte) Record {
	get := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off*4:]))
	}
	var r Record
	r.Valid = get(0) != 0
	r.Depth = get(1)
	for i := 0; i < 4; i++ {
		r.XYZ[i] = get(2 + i)
	}
	off := 6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Cov3D[i][j] = get(off)
			off++
		}
	}
	r.Color.Opacity = get(off)
	off++
	for i := 0; i < 16; i++ {
		for k := 0; k < 3; k++ {
			r.Color.Coeff[i][k] = get(off)
			off++
		}
	}
	return r
}

// marshalAll packs a slice of Records into one flat byte buffer, the
// unit exchanged by Transport.Send/Recv in one odd-even round.
func marshalAll(recs []Record) []byte {
	buf := make([]byte, len(recs)*recordBytes)
	for i, r := range recs {
		marshal(r, buf[i*recordBytes:(i+1)*recordBytes])
	}
	return buf
}

func unmarshalAll(buf []byte) []Record {
	n := len(buf) / recordBytes
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = unmarshal(buf[i*recordBytes : (i+1)*recordBytes])
	}
	return recs
}
