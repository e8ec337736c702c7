package export

import (
	"errors"
	"fmt"

	"github.com/karpathyan/asd2vtk/types"
)

// ErrMalformedField is returned when a vector table does not hold a whole
// number of timesteps
var ErrMalformedField = errors.New("vector rows are not a whole number of timesteps")

// PartitionTimesteps splits a flat table of T*nAtoms rows into T chunks of
// nAtoms rows. Chunk i is rows [i*nAtoms, (i+1)*nAtoms) and shares storage
// with field.
func PartitionTimesteps(field types.VectorField, nAtoms int) (chunks []types.VectorField, err error) {
	var (
		rows = field.NumRows()
	)
	if nAtoms < 0 {
		return nil, fmt.Errorf("negative atom count %d", nAtoms)
	}
	if nAtoms == 0 {
		if rows != 0 {
			return nil, fmt.Errorf("%w: %d rows for 0 atoms", ErrMalformedField, rows)
		}
		return
	}
	T := rows / nAtoms
	if rem := rows - T*nAtoms; rem != 0 {
		return nil, fmt.Errorf("%w: %d rows = %d timesteps x %d atoms + %d left over",
			ErrMalformedField, rows, T, nAtoms, rem)
	}
	chunks = make([]types.VectorField, T)
	for i := range chunks {
		chunks[i] = field[i*nAtoms : (i+1)*nAtoms : (i+1)*nAtoms]
	}
	return
}
