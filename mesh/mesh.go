package mesh

import (
	"fmt"
	"io"

	"github.com/karpathyan/asd2vtk/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	PointVectorsName = "Magnetization"
	CellVectorsName  = "Cell_Magnetization"
)

// VectorArray is a named 3-component attribute array
type VectorArray struct {
	Name   string
	Values []r3.Vec
}

// Mesh represents an unstructured grid of disjoint cells with vector data
// attached to its points and cells
type Mesh struct {
	// Geometry
	Vertices []r3.Vec // Vertex coordinates [nvertices]

	// Element data
	EtoV         [][]int             // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []utils.ElementType // Element type for each element

	// Attributes
	PointVectors *VectorArray // [nvertices]
	CellVectors  *VectorArray // [nelems]

	// Mesh statistics
	NumElements int
	NumVertices int
}

// NewMesh allocates a mesh with room for nElems cells of nVertsPerElem points
func NewMesh(nElems, nVertsPerElem int) *Mesh {
	return &Mesh{
		Vertices:     make([]r3.Vec, 0, nElems*nVertsPerElem),
		EtoV:         make([][]int, 0, nElems),
		ElementTypes: make([]utils.ElementType, 0, nElems),
	}
}

// AddElement appends the element's points to the global point list and
// registers a cell referencing them in the given order
func (m *Mesh) AddElement(et utils.ElementType, points []r3.Vec) (elemID int) {
	ids := make([]int, len(points))
	for i, p := range points {
		ids[i] = len(m.Vertices)
		m.Vertices = append(m.Vertices, p)
	}
	elemID = len(m.EtoV)
	m.EtoV = append(m.EtoV, ids)
	m.ElementTypes = append(m.ElementTypes, et)
	m.NumElements = len(m.EtoV)
	m.NumVertices = len(m.Vertices)
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)

	// Count element types
	typeCounts := make(map[utils.ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	if len(typeCounts) > 0 {
		fmt.Fprintf(w, "  Element types:\n")
		for t, count := range typeCounts {
			fmt.Fprintf(w, "    %s: %d\n", t, count)
		}
	}
}
