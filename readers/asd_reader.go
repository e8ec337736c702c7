package readers

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/karpathyan/asd2vtk/types"
	"github.com/karpathyan/asd2vtk/utils"
	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrMalformedTable is returned for numeric tables that cannot be used
var ErrMalformedTable = errors.New("malformed table")

// ReadCoordinates reads the atom positions of a coordinate file, using only
// the spatial columns of tl
func ReadCoordinates(filename string, tl *ToolLayout) (ct types.CoordinateTable, err error) {
	var vecs []r3.Vec
	if vecs, err = readVectors(filename, tl.CoordColumns); err != nil {
		return
	}
	ct = types.CoordinateTable(vecs)
	return
}

// ReadVectorField reads the X, Y and Z components of a vector file. The
// columns are chosen by the file name prefix.
func ReadVectorField(filename string, tl *ToolLayout) (vf types.VectorField, err error) {
	var fl FieldLayout
	if fl, err = tl.FieldFor(filename); err != nil {
		return
	}
	var vecs []r3.Vec
	if vecs, err = readVectors(filename, fl.Columns); err != nil {
		return
	}
	vf = types.VectorField(vecs)
	return
}

func readVectors(filename string, columns Columns) (vecs []r3.Vec, err error) {
	if err = CheckReadable(filename); err != nil {
		return
	}
	var (
		data  []byte
		clean bool
	)
	if data, clean, err = dataRows(filename); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if len(data) == 0 {
		return []r3.Vec{}, nil
	}
	tableFile := filename
	if !clean {
		if tableFile, err = writeRows(data); err != nil {
			return nil, err
		}
		defer os.Remove(tableFile)
	}
	var cols [][]float64
	if cols, err = table.ReadTable(tableFile, columns[:], nil); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedTable, filename, err)
	}
	if len(cols) != 3 || len(cols[1]) != len(cols[0]) || len(cols[2]) != len(cols[0]) {
		return nil, fmt.Errorf("%w: %s: columns %v are ragged", ErrMalformedTable, filename, columns)
	}
	vecs = types.NewTableFromColumns(cols[0], cols[1], cols[2])
	if i := utils.FirstNan(vecs); i >= 0 {
		return nil, fmt.Errorf("%w: %s: row %d has a NaN component", ErrMalformedTable, filename, i)
	}
	return
}

// dataRows returns the data lines of filename with '#' comment lines and
// blank lines removed. clean reports that nothing was removed.
func dataRows(filename string) (data []byte, clean bool, err error) {
	var f *os.File
	if f, err = os.Open(filename); err != nil {
		return
	}
	defer f.Close()
	var (
		buf     bytes.Buffer
		scanner = bufio.NewScanner(f)
	)
	clean = true
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			clean = false
			continue
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if err = scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("%s: %w", filename, err)
	}
	return buf.Bytes(), clean, nil
}

// writeRows stores data in a temporary file for the table reader
func writeRows(data []byte) (fname string, err error) {
	var f *os.File
	if f, err = os.CreateTemp("", "asd2vtk-*.out"); err != nil {
		return
	}
	fname = f.Name()
	if _, err = f.Write(data); err == nil {
		err = f.Close()
	} else {
		f.Close()
	}
	if err != nil {
		os.Remove(fname)
		return "", err
	}
	return
}
