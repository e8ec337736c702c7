package types

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// CoordinateTable holds one lattice-site position per atom. Its order
// defines the atom indices used everywhere else.
type CoordinateTable []r3.Vec

// VectorField holds per-atom 3-vectors, possibly for several timesteps
// stored back to back.
type VectorField []r3.Vec

func (ct CoordinateTable) NumAtoms() int { return len(ct) }

func (vf VectorField) NumRows() int { return len(vf) }

// NewTableFromColumns zips three equal-length columns into vectors
func NewTableFromColumns(xs, ys, zs []float64) (vecs []r3.Vec) {
	vecs = make([]r3.Vec, len(xs))
	for i := range xs {
		vecs[i] = r3.Vec{X: xs[i], Y: ys[i], Z: zs[i]}
	}
	return
}
