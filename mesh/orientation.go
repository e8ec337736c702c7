package mesh

import (
	"fmt"

	"github.com/karpathyan/asd2vtk/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// CheckOrientation verifies that every face of every cell has an outward
// normal. A hexahedron whose corners were emitted in row-major order has two
// faces pointing inward and is reported here.
func (m *Mesh) CheckOrientation() error {
	for k, verts := range m.EtoV {
		var (
			et     = m.ElementTypes[k]
			center r3.Vec
		)
		if et.GetDimension() != 3 || et.GetNumFaces() == 0 {
			continue
		}
		if len(verts) != et.GetNumNodes() {
			return fmt.Errorf("element %d (%s): %d vertices, expected %d", k, et, len(verts), et.GetNumNodes())
		}
		for _, v := range verts {
			center = r3.Add(center, m.Vertices[v])
		}
		center = r3.Scale(1./float64(len(verts)), center)
		for f, face := range utils.GetElementFaces(et, verts) {
			var (
				p0     = m.Vertices[face[0]]
				normal = r3.Cross(
					r3.Sub(m.Vertices[face[1]], p0),
					r3.Sub(m.Vertices[face[2]], p0))
				faceCenter r3.Vec
			)
			for _, v := range face {
				faceCenter = r3.Add(faceCenter, m.Vertices[v])
			}
			faceCenter = r3.Scale(1./float64(len(face)), faceCenter)
			if r3.Dot(normal, r3.Sub(faceCenter, center)) <= 0 {
				return fmt.Errorf("element %d (%s): face %d is inverted", k, et, f)
			}
		}
	}
	return nil
}
