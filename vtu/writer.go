// Package vtu reads and writes VTK XML UnstructuredGrid (.vtu) files in the
// ASCII encoding.
package vtu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/karpathyan/asd2vtk/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const Extension = ".vtu"

// WriteFile writes m to filename. A partially written file is removed.
func WriteFile(filename string, m *mesh.Mesh) (err error) {
	var f *os.File
	if f, err = os.Create(filename); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(filename)
			err = fmt.Errorf("writing %s: %w", filename, err)
		}
	}()
	err = Write(f, m)
	return
}

// Write encodes m as an UnstructuredGrid document. The output depends only on
// the mesh content.
func Write(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	ew.printf("<?xml version=\"1.0\"?>\n")
	ew.printf("<VTKFile type=\"UnstructuredGrid\" version=\"1.0\" byte_order=\"LittleEndian\" header_type=\"UInt64\">\n")
	ew.printf("  <UnstructuredGrid>\n")
	ew.printf("    <Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", len(m.Vertices), len(m.EtoV))

	// attributes
	ew.printf("      <PointData")
	if m.PointVectors != nil {
		ew.printf(" Vectors=\"%s\"", m.PointVectors.Name)
	}
	ew.printf(">\n")
	if m.PointVectors != nil {
		ew.vectors(m.PointVectors.Name, m.PointVectors.Values)
	}
	ew.printf("      </PointData>\n")
	ew.printf("      <CellData")
	if m.CellVectors != nil {
		ew.printf(" Vectors=\"%s\"", m.CellVectors.Name)
	}
	ew.printf(">\n")
	if m.CellVectors != nil {
		ew.vectors(m.CellVectors.Name, m.CellVectors.Values)
	}
	ew.printf("      </CellData>\n")

	// coordinates
	ew.printf("      <Points>\n")
	ew.vectors("Points", m.Vertices)
	ew.printf("      </Points>\n")

	// connectivities
	ew.printf("      <Cells>\n")
	ew.printf("        <DataArray type=\"Int64\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, verts := range m.EtoV {
		ew.printf("         ")
		for _, v := range verts {
			ew.printf(" %d", v)
		}
		ew.printf("\n")
	}
	ew.printf("        </DataArray>\n")
	ew.printf("        <DataArray type=\"Int64\" Name=\"offsets\" format=\"ascii\">\n")
	var offset int
	for _, verts := range m.EtoV {
		offset += len(verts)
		ew.printf("          %d\n", offset)
	}
	ew.printf("        </DataArray>\n")
	ew.printf("        <DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for k, et := range m.ElementTypes {
		code, ok := et.VTKCellType()
		if !ok {
			return fmt.Errorf("element %d: no VTK cell type for %s", k, et)
		}
		ew.printf("          %d\n", code)
	}
	ew.printf("        </DataArray>\n")
	ew.printf("      </Cells>\n")

	ew.printf("    </Piece>\n")
	ew.printf("  </UnstructuredGrid>\n")
	ew.printf("</VTKFile>\n")
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// errWriter keeps the first write error so the document body stays linear
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) vectors(name string, vecs []r3.Vec) {
	ew.printf("        <DataArray type=\"Float64\" Name=\"%s\" NumberOfComponents=\"3\" format=\"ascii\">\n", name)
	for _, v := range vecs {
		ew.printf("          %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	ew.printf("        </DataArray>\n")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
