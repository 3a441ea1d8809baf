// Package loader defines the contract the rendering pipeline consumes
// for reading a columnar vertex stream, and provides one concrete
// implementation for binary PLY point clouds. The pipeline itself never
// parses a file format; it only calls VertexSource.
package loader

import (
	"errors"
	"strconv"
)

// ErrMissingProperty is returned when a required vertex property is
// absent from the stream.
var ErrMissingProperty = errors.New("loader: missing property")

// VertexSource is a read-only columnar vertex stream. Implementations
// are expected to be cheap to query for Count() and individual
// properties, since every rank of the distributed driver reads every
// property column and keeps only its strided share of the vertices.
type VertexSource interface {
	// Count returns the number of vertices (primitives).
	Count() int
	// PropertyF32 returns the named property as a length-Count slice of
	// float32, or ErrMissingProperty if the stream doesn't carry it.
	PropertyF32(name string) ([]float32, error)
}

// RequiredProperties lists every property name THE CORE's loading
// post-processing (internal/pipeline) depends on.
var RequiredProperties = func() []string {
	names := []string{"x", "y", "z", "opacity"}
	for i := 0; i < 4; i++ {
		names = append(names, "rot_"+strconv.Itoa(i))
	}
	for i := 0; i < 3; i++ {
		names = append(names, "scale_"+strconv.Itoa(i))
	}
	for i := 0; i < 3; i++ {
		names = append(names, "f_dc_"+strconv.Itoa(i))
	}
	for i := 0; i < 45; i++ {
		names = append(names, "f_rest_"+strconv.Itoa(i))
	}
	return names
}()
