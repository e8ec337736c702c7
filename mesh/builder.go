package mesh

import (
	"errors"
	"fmt"

	"github.com/karpathyan/asd2vtk/types"
	"github.com/karpathyan/asd2vtk/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrRowMismatch is returned when the coordinate and vector tables do not
// describe the same number of atoms
var ErrRowMismatch = errors.New("coordinate and vector row counts differ")

type BuildOptions struct {
	// ReplicatePointData writes each atom's vector to all 8 corners of its
	// cube instead of only the first one
	ReplicatePointData bool
}

// BuildCubeMesh creates one hexahedral cell per atom, a unit cube centered on
// the atom's coordinate, and attaches the atom's vector as point and cell
// data. Without ReplicatePointData only point 8*i carries atom i's vector,
// the other seven corners stay zero.
func BuildCubeMesh(coords types.CoordinateTable, field types.VectorField,
	opts BuildOptions) (m *Mesh, err error) {
	if len(coords) != len(field) {
		err = fmt.Errorf("%w: %d coordinates, %d vector rows",
			ErrRowMismatch, len(coords), len(field))
		return
	}
	var (
		N   = len(coords)
		Nhv = utils.Hex.GetNumNodes()
	)
	m = NewMesh(N, Nhv)
	for _, center := range coords {
		corners := CubeCorners(center)
		m.AddElement(utils.Hex, corners[:])
	}

	m.PointVectors = &VectorArray{
		Name:   PointVectorsName,
		Values: make([]r3.Vec, m.NumVertices),
	}
	for i, vec := range field {
		if opts.ReplicatePointData {
			for _, id := range m.EtoV[i] {
				m.PointVectors.Values[id] = vec
			}
		} else {
			m.PointVectors.Values[i*Nhv] = vec
		}
	}

	m.CellVectors = &VectorArray{
		Name:   CellVectorsName,
		Values: make([]r3.Vec, N),
	}
	copy(m.CellVectors.Values, field)
	return
}
