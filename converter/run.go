// Package converter turns atomistic spin-dynamics output into VTK
// UnstructuredGrid files, either one snapshot or one file per timestep.
package converter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/karpathyan/asd2vtk/InputParameters"
	"github.com/karpathyan/asd2vtk/export"
	"github.com/karpathyan/asd2vtk/mesh"
	"github.com/karpathyan/asd2vtk/readers"
	"github.com/karpathyan/asd2vtk/types"
	"github.com/karpathyan/asd2vtk/utils"
)

type Result struct {
	Mode         InputParameters.Mode
	CoordFile    string
	VectorFile   string
	NumAtoms     int
	NumTimesteps int
	Files        []string       // Written files in timestep order
	Report       *export.Report // Series mode only
	Elapsed      time.Duration
}

// Run locates and reads the inputs described by ip and writes the meshes.
// Progress goes to out. Every failure is returned, nothing exits the process.
func Run(ip *InputParameters.ConvertParameters, out io.Writer) (res *Result, err error) {
	var (
		start = time.Now()
		tl    *readers.ToolLayout
	)
	if out == nil {
		out = io.Discard
	}
	if tl, err = ip.ToolTable().Lookup(ip.Tool); err != nil {
		return
	}
	res = &Result{Mode: ip.Mode}
	if res.CoordFile, res.VectorFile, err = locateInputs(ip, tl); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "reading data from: %q and %q\n", res.CoordFile, res.VectorFile)

	coords, err := readers.ReadCoordinates(res.CoordFile, tl)
	if err != nil {
		return nil, err
	}
	field, err := readers.ReadVectorField(res.VectorFile, tl)
	if err != nil {
		return nil, err
	}
	res.NumAtoms = len(coords)
	fmt.Fprintf(out, "length of vector file = %d\n", len(field))
	fmt.Fprintf(out, "length of coord file = %d\n", len(coords))

	if ip.OutputDir != "" {
		if err = os.MkdirAll(ip.OutputDir, 0755); err != nil {
			return nil, err
		}
	}
	var (
		naming = export.Naming{
			Prefix: ip.OutputPrefix,
			Source: res.VectorFile,
			Dir:    ip.OutputDir,
		}
		opts = export.Options{
			Workers:          ip.Workers,
			Build:            mesh.BuildOptions{ReplicatePointData: ip.ReplicatePointData},
			CheckOrientation: ip.CheckOrientation,
			Log:              out,
		}
	)
	switch ip.Mode {
	case InputParameters.Series:
		var chunks []types.VectorField
		if chunks, err = export.PartitionTimesteps(field, len(coords)); err != nil {
			return nil, fmt.Errorf("%s: %w", res.VectorFile, err)
		}
		res.NumTimesteps = len(chunks)
		fmt.Fprintf(out, "number of time-steps = %d\n", res.NumTimesteps)
		res.Report = export.Export(coords, chunks, naming, opts)
		res.Report.Summary(out)
		res.Files = res.Report.Written()
		if err = res.Report.Err(); err != nil {
			res.Elapsed = time.Since(start)
			return
		}
	default:
		var m *mesh.Mesh
		if m, err = export.WriteMesh(coords, field, naming.FileName(0), opts); err != nil {
			return nil, err
		}
		res.NumTimesteps = 1
		res.Files = []string{naming.FileName(0)}
		fmt.Fprintf(out, "number of points in VTU file = %d (x8)\n", m.NumVertices)
	}
	res.Elapsed = time.Since(start)
	fmt.Fprintf(out, "finished in %v, %s\n", res.Elapsed, utils.GetMemUsage())
	return
}

func locateInputs(ip *InputParameters.ConvertParameters,
	tl *readers.ToolLayout) (coordFile, vectorFile string, err error) {
	if ip.CoordFile != "" {
		coordFile = ip.CoordFile
		if err = readers.CheckReadable(coordFile); err != nil {
			return
		}
	} else if coordFile, err = readers.Discover(ip.Directory, tl.CoordPattern, "coordinate"); err != nil {
		return
	}
	if ip.VectorFile != "" {
		vectorFile = ip.VectorFile
		if _, err = tl.FieldFor(vectorFile); err != nil {
			return
		}
		err = readers.CheckReadable(vectorFile)
		return
	}
	var fl readers.FieldLayout
	if fl, err = tl.Field(ip.Mode.DefaultFieldPrefix()); err != nil {
		return
	}
	vectorFile, err = readers.Discover(ip.Directory, fl.Pattern(), fl.Prefix)
	return
}
