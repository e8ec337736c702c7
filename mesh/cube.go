package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// CubeHalfWidth is the distance from a cube's center to each of its faces
const CubeHalfWidth = 0.5

// hexCornerOrder permutes the binary counting order of the corners (x
// fastest, then y, then z) into the VTK_HEXAHEDRON order, which walks each
// z-layer counter-clockwise
var hexCornerOrder = [8]int{0, 1, 3, 2, 4, 5, 7, 6}

// CubeCorners returns the 8 corners of the unit cube centered on center, in
// hexahedron order
func CubeCorners(center r3.Vec) (corners [8]r3.Vec) {
	var natural [8]r3.Vec
	for i := range natural {
		offset := r3.Vec{
			X: float64(i&1) - CubeHalfWidth,
			Y: float64((i>>1)&1) - CubeHalfWidth,
			Z: float64((i>>2)&1) - CubeHalfWidth,
		}
		natural[i] = r3.Add(center, offset)
	}
	for i, n := range hexCornerOrder {
		corners[i] = natural[n]
	}
	return
}
