package vtu

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/karpathyan/asd2vtk/mesh"
	"github.com/karpathyan/asd2vtk/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

type vtkFile struct {
	XMLName xml.Name `xml:"VTKFile"`
	Type    string   `xml:"type,attr"`
	Grid    struct {
		Pieces []piece `xml:"Piece"`
	} `xml:"UnstructuredGrid"`
}

type piece struct {
	NumberOfPoints int        `xml:"NumberOfPoints,attr"`
	NumberOfCells  int        `xml:"NumberOfCells,attr"`
	PointData      arrayGroup `xml:"PointData"`
	CellData       arrayGroup `xml:"CellData"`
	Points         arrayGroup `xml:"Points"`
	Cells          arrayGroup `xml:"Cells"`
}

type arrayGroup struct {
	Arrays []dataArray `xml:"DataArray"`
}

type dataArray struct {
	Type       string `xml:"type,attr"`
	Name       string `xml:"Name,attr"`
	Components int    `xml:"NumberOfComponents,attr"`
	Format     string `xml:"format,attr"`
	Text       string `xml:",chardata"`
}

func (ag arrayGroup) find(name string) (da *dataArray) {
	for i := range ag.Arrays {
		if ag.Arrays[i].Name == name {
			return &ag.Arrays[i]
		}
	}
	return nil
}

// ReadFile parses an ASCII UnstructuredGrid written by Write. Only the first
// piece is read.
func ReadFile(filename string) (m *mesh.Mesh, err error) {
	var data []byte
	if data, err = os.ReadFile(filename); err != nil {
		return
	}
	if m, err = Parse(data); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

func Parse(data []byte) (m *mesh.Mesh, err error) {
	var doc vtkFile
	if err = xml.Unmarshal(data, &doc); err != nil {
		return
	}
	if doc.Type != "UnstructuredGrid" {
		return nil, fmt.Errorf("unsupported VTK file type %q", doc.Type)
	}
	if len(doc.Grid.Pieces) == 0 {
		return nil, fmt.Errorf("no Piece element")
	}
	p := doc.Grid.Pieces[0]
	for _, ag := range []arrayGroup{p.PointData, p.CellData, p.Points, p.Cells} {
		for _, da := range ag.Arrays {
			if da.Format != "ascii" {
				return nil, fmt.Errorf("DataArray %q: unsupported format %q", da.Name, da.Format)
			}
		}
	}

	m = &mesh.Mesh{}
	if len(p.Points.Arrays) != 1 {
		return nil, fmt.Errorf("expected one Points array, found %d", len(p.Points.Arrays))
	}
	if m.Vertices, err = p.Points.Arrays[0].vectors(); err != nil {
		return nil, err
	}
	if len(m.Vertices) != p.NumberOfPoints {
		return nil, fmt.Errorf("NumberOfPoints=%d but %d points found", p.NumberOfPoints, len(m.Vertices))
	}

	var conn, offsets, codes []int
	for _, c := range []struct {
		name string
		dst  *[]int
	}{{"connectivity", &conn}, {"offsets", &offsets}, {"types", &codes}} {
		da := p.Cells.find(c.name)
		if da == nil {
			return nil, fmt.Errorf("missing Cells array %q", c.name)
		}
		if *c.dst, err = da.ints(); err != nil {
			return nil, err
		}
	}
	if len(offsets) != p.NumberOfCells || len(codes) != p.NumberOfCells {
		return nil, fmt.Errorf("NumberOfCells=%d but %d offsets and %d types found",
			p.NumberOfCells, len(offsets), len(codes))
	}
	var start int
	for k, end := range offsets {
		if end < start || end > len(conn) {
			return nil, fmt.Errorf("cell %d: offset %d out of range", k, end)
		}
		verts := append([]int(nil), conn[start:end]...)
		for _, v := range verts {
			if v < 0 || v >= len(m.Vertices) {
				return nil, fmt.Errorf("cell %d: point index %d out of range [0,%d)", k, v, len(m.Vertices))
			}
		}
		if codes[k] < 0 || codes[k] > math.MaxUint8 {
			return nil, fmt.Errorf("cell %d: cell type %d out of range", k, codes[k])
		}
		et := utils.ElementTypeFromVTK(uint8(codes[k]))
		if et != utils.Unknown && len(verts) != et.GetNumNodes() {
			return nil, fmt.Errorf("cell %d (%s): %d points, expected %d", k, et, len(verts), et.GetNumNodes())
		}
		m.EtoV = append(m.EtoV, verts)
		m.ElementTypes = append(m.ElementTypes, et)
		start = end
	}
	m.NumVertices = len(m.Vertices)
	m.NumElements = len(m.EtoV)

	if m.PointVectors, err = p.PointData.vectorArray(m.NumVertices); err != nil {
		return nil, fmt.Errorf("PointData: %w", err)
	}
	if m.CellVectors, err = p.CellData.vectorArray(m.NumElements); err != nil {
		return nil, fmt.Errorf("CellData: %w", err)
	}
	return
}

// vectorArray returns the first 3-component array of the group, nil if none
func (ag arrayGroup) vectorArray(expected int) (va *mesh.VectorArray, err error) {
	for _, da := range ag.Arrays {
		if da.Components != 3 {
			continue
		}
		va = &mesh.VectorArray{Name: da.Name}
		if va.Values, err = da.vectors(); err != nil {
			return nil, err
		}
		if len(va.Values) != expected {
			return nil, fmt.Errorf("array %q has %d tuples, expected %d", da.Name, len(va.Values), expected)
		}
		return
	}
	return
}

func (da dataArray) vectors() (vecs []r3.Vec, err error) {
	fields := strings.Fields(da.Text)
	if len(fields)%3 != 0 {
		return nil, fmt.Errorf("array %q: %d values is not a multiple of 3", da.Name, len(fields))
	}
	vecs = make([]r3.Vec, len(fields)/3)
	var xyz [3]float64
	for i := range vecs {
		for j := 0; j < 3; j++ {
			if xyz[j], err = strconv.ParseFloat(fields[3*i+j], 64); err != nil {
				return nil, fmt.Errorf("array %q: %w", da.Name, err)
			}
		}
		vecs[i] = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	return
}

func (da dataArray) ints() (vals []int, err error) {
	fields := strings.Fields(da.Text)
	vals = make([]int, len(fields))
	for i, f := range fields {
		if vals[i], err = strconv.Atoi(f); err != nil {
			return nil, fmt.Errorf("array %q: %w", da.Name, err)
		}
	}
	return
}
