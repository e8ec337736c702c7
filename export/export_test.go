package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/karpathyan/asd2vtk/mesh"
	"github.com/karpathyan/asd2vtk/types"
	"github.com/karpathyan/asd2vtk/vtu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNaming(t *testing.T) {
	n := Naming{Source: "/data/moment.bcc_Fe.out"}
	assert.Equal(t, "moment.bcc_Fe", n.Stem())
	assert.Equal(t, "outfile_moment.bcc_Fe_0.vtu", n.FileName(0))
	n = Naming{Prefix: "vstrm", Source: "STT.x.out", Dir: "out", Extension: ".xml"}
	assert.Equal(t, filepath.Join("out", "vstrm_STT.x_12.xml"), n.FileName(12))
}

func TestExport(t *testing.T) {
	var (
		dir    = t.TempDir()
		coords = types.CoordinateTable{{}, {X: 1}}
		field  = types.VectorField{
			{X: 1}, {Y: 1}, // step 0
			{Y: 1}, {Z: 1}, // step 1
			{Z: 1}, {X: -1}, // step 2
		}
		log bytes.Buffer
	)
	chunks, err := PartitionTimesteps(field, len(coords))
	require.NoError(t, err)
	naming := Naming{Source: "moment.test.out", Dir: dir}
	r := Export(coords, chunks, naming, Options{Workers: 2, Log: &log, CheckOrientation: true})
	require.NoError(t, r.Err())
	assert.Empty(t, r.Failures)
	assert.Equal(t, 2, r.Workers)
	require.Len(t, r.Written(), 3)
	assert.Greater(t, int64(r.Elapsed), int64(0))

	for step := 0; step < 3; step++ {
		fname := filepath.Join(dir, "outfile_moment.test_"+string(rune('0'+step))+".vtu")
		assert.Equal(t, fname, r.Files[step])
		m, err := vtu.ReadFile(fname)
		require.NoError(t, err)
		assert.Equal(t, 16, m.NumVertices)
		assert.Equal(t, 2, m.NumElements)
		assert.Equal(t, []r3.Vec(chunks[step]), m.CellVectors.Values)
		for i, v := range m.PointVectors.Values {
			if i%8 == 0 {
				assert.Equal(t, chunks[step][i/8], v)
			} else {
				assert.Equal(t, r3.Vec{}, v)
			}
		}
		assert.Contains(t, log.String(), fname)
	}

	var summary bytes.Buffer
	r.Summary(&summary)
	assert.Contains(t, summary.String(), "3 of 3 timesteps written by 2 workers")
}

func TestExport_IsolatesFailures(t *testing.T) {
	var (
		dir    = t.TempDir()
		coords = types.CoordinateTable{{}, {X: 1}}
		chunks = []types.VectorField{
			{{X: 1}, {Y: 1}},
			{{X: 1}}, // short chunk, fails to build
			{{Z: 1}, {Z: 1}},
			{{Z: 1}, {Z: 1}, {Z: 1}}, // long chunk, fails to build
		}
	)
	for _, workers := range []int{1, 2, 4, 8} {
		sub := filepath.Join(dir, string(rune('a'+workers)))
		require.NoError(t, os.Mkdir(sub, 0755))
		r := Export(coords, chunks, Naming{Source: "moment.x.out", Dir: sub}, Options{Workers: workers})
		require.Len(t, r.Failures, 2)
		assert.Equal(t, 1, r.Failures[0].Step)
		assert.Equal(t, 3, r.Failures[1].Step)
		assert.True(t, errors.Is(r.Failures[0], mesh.ErrRowMismatch))
		switch {
		case workers == 1:
			assert.Equal(t, 0, r.Failures[1].Worker)
		case workers >= len(chunks):
			assert.Equal(t, 3, r.Failures[1].Worker)
		}

		err := r.Err()
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 2)
		assert.Contains(t, err.Error(), "timestep 1")

		assert.Equal(t, []string{
			filepath.Join(sub, "outfile_moment.x_0.vtu"),
			filepath.Join(sub, "outfile_moment.x_2.vtu"),
		}, r.Written())
		_, statErr := os.Stat(filepath.Join(sub, "outfile_moment.x_1.vtu"))
		assert.True(t, os.IsNotExist(statErr))
	}
}

func TestExport_BadDirectory(t *testing.T) {
	chunks := []types.VectorField{{{X: 1}}, {{Y: 1}}}
	r := Export(types.CoordinateTable{{}}, chunks,
		Naming{Source: "moment.x.out", Dir: filepath.Join(t.TempDir(), "missing")}, Options{})
	assert.Len(t, r.Failures, 2)
	assert.Empty(t, r.Written())
}

func TestExport_NoTimesteps(t *testing.T) {
	r := Export(types.CoordinateTable{{}}, nil, Naming{Source: "moment.x.out", Dir: t.TempDir()}, Options{})
	assert.NoError(t, r.Err())
	assert.Empty(t, r.Files)
	assert.Equal(t, 1, r.Workers)
}

func TestExport_Idempotent(t *testing.T) {
	var (
		coords = types.CoordinateTable{{X: 0.25, Y: -3, Z: 7}, {X: 1e-3}}
		chunks = []types.VectorField{{{X: 0.6, Y: 0.8}, {Z: -1}}}
		d1, d2 = t.TempDir(), t.TempDir()
	)
	r1 := Export(coords, chunks, Naming{Source: "restart.a.out", Dir: d1}, Options{})
	r2 := Export(coords, chunks, Naming{Source: "restart.a.out", Dir: d2}, Options{})
	require.NoError(t, r1.Err())
	require.NoError(t, r2.Err())
	b1, err := os.ReadFile(r1.Files[0])
	require.NoError(t, err)
	b2, err := os.ReadFile(r2.Files[0])
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}
