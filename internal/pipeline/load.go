// Package pipeline wires the projection/splatting kernel together: it
// turns a raw vertex stream into a primitive store, applying the
// post-processing the raw disk representation needs, and renders one
// frame by running depth sort, projection and rasterization in order.
package pipeline

import (
	"fmt"
	"math"

	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/loader"
	"github.com/cwbudde/gosplat/internal/primitive"
	"github.com/cwbudde/gosplat/internal/sh"
)

// LoadIndices reads the given vertex indices from src into a Store,
// applying the stored-to-live post-processing: quaternion normalization,
// scale <- exp(scale), opacity <- sigmoid(opacity), and packing the SH
// coefficients into 16 RGB triples.
func LoadIndices(src loader.VertexSource, indices []int) (*primitive.Store, error) {
	props, err := loadProps(src)
	if err != nil {
		return nil, err
	}

	n := len(indices)
	xyz := make([]linalg.Vec4, n)
	cov3d := make([]linalg.Mat3, n)
	colors := make([]sh.Harmonic, n)

	for j, i := range indices {
		xyz[j] = linalg.Vec4{props.x[i], props.y[i], props.z[i], 1}

		q := linalg.Vec4{props.rot[0][i], props.rot[1][i], props.rot[2][i], props.rot[3][i]}.Normalized()
		rot := linalg.QuatToMat(q)
		scale := linalg.Vec3{
			expf(props.scale[0][i]),
			expf(props.scale[1][i]),
			expf(props.scale[2][i]),
		}
		cov3d[j] = linalg.CalcCov3D(scale, rot)

		var coeff [16]linalg.Vec3
		coeff[0] = linalg.Vec3{props.fDC[0][i], props.fDC[1][i], props.fDC[2][i]}
		for k := 1; k < 16; k++ {
			base := k - 1
			coeff[k] = linalg.Vec3{
				props.fRest[base][i],
				props.fRest[base+15][i],
				props.fRest[base+30][i],
			}
		}
		opacity := sigmoid(props.opacity[i])
		colors[j] = sh.New(coeff, opacity)
	}

	return primitive.New(xyz, cov3d, colors), nil
}

// LoadAll loads every primitive in src.
func LoadAll(src loader.VertexSource) (*primitive.Store, error) {
	n := src.Count()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return LoadIndices(src, idx)
}

// vertexProps holds the raw per-vertex property columns LoadIndices
// needs, read once up front.
type vertexProps struct {
	x, y, z  []float32
	opacity  []float32
	rot      [4][]float32 // rot[0..3] = rot_0..rot_3 (w,x,y,z order on disk)
	scale    [3][]float32
	fDC      [3][]float32
	fRest    [45][]float32
}

func loadProps(src loader.VertexSource) (*vertexProps, error) {
	p := &vertexProps{}
	var err error

	get := func(name string) []float32 {
		if err != nil {
			return nil
		}
		var v []float32
		v, err = src.PropertyF32(name)
		return v
	}

	p.x = get("x")
	p.y = get("y")
	p.z = get("z")
	p.opacity = get("opacity")
	for i := 0; i < 4; i++ {
		p.rot[i] = get(fmt.Sprintf("rot_%d", i))
	}
	for i := 0; i < 3; i++ {
		p.scale[i] = get(fmt.Sprintf("scale_%d", i))
	}
	for i := 0; i < 3; i++ {
		p.fDC[i] = get(fmt.Sprintf("f_dc_%d", i))
	}
	for i := 0; i < 45; i++ {
		p.fRest[i] = get(fmt.Sprintf("f_rest_%d", i))
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func expf(v float32) float32 {
	return float32(math.Exp(float64(v)))
}

func sigmoid(v float32) float32 {
	return float32(1 / (1 + math.Exp(float64(-v))))
}

// Positions reads only x, y, z from src for the given indices, without
// loading any other attribute. The distributed driver does not call it:
// it loads every attribute of its strided share through LoadIndices.
func Positions(src loader.VertexSource, indices []int) ([]linalg.Vec4, error) {
	x, err := src.PropertyF32("x")
	if err != nil {
		return nil, err
	}
	y, err := src.PropertyF32("y")
	if err != nil {
		return nil, err
	}
	z, err := src.PropertyF32("z")
	if err != nil {
		return nil, err
	}
	out := make([]linalg.Vec4, len(indices))
	for j, i := range indices {
		out[j] = linalg.Vec4{x[i], y[i], z[i], 1}
	}
	return out, nil
}
