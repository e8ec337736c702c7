package export

import (
	"fmt"
	"io"
	"sync"

	"github.com/karpathyan/asd2vtk/mesh"
	"github.com/karpathyan/asd2vtk/types"
	"github.com/karpathyan/asd2vtk/vtu"
)

type Options struct {
	Workers int // Zero means one worker per CPU
	Build   mesh.BuildOptions
	// CheckOrientation validates every cell before writing
	CheckOrientation bool
	Log              io.Writer
}

// WriteMesh builds the cube mesh of one timestep and writes it to filename
func WriteMesh(coords types.CoordinateTable, field types.VectorField,
	filename string, opts Options) (m *mesh.Mesh, err error) {
	if m, err = mesh.BuildCubeMesh(coords, field, opts.Build); err != nil {
		return nil, err
	}
	if opts.CheckOrientation {
		if err = m.CheckOrientation(); err != nil {
			return nil, err
		}
	}
	if err = vtu.WriteFile(filename, m); err != nil {
		return nil, err
	}
	if opts.Log != nil {
		fmt.Fprintf(opts.Log, "File written: %q\n", filename)
	}
	return
}

// UnitError records the failure of one timestep
type UnitError struct {
	Step   int
	Worker int // Bucket of the worker that ran the step
	File   string
	Err    error
}

func (ue *UnitError) Error() string {
	return fmt.Sprintf("timestep %d (%s): %v", ue.Step, ue.File, ue.Err)
}

func (ue *UnitError) Unwrap() error { return ue.Err }

// lockedWriter serializes progress lines from concurrent units
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
