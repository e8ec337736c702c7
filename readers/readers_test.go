package readers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/karpathyan/asd2vtk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))
	return fname
}

func TestToolTable(t *testing.T) {
	tt := DefaultTools()
	tl, err := tt.Lookup("uppasd")
	require.NoError(t, err)
	assert.Equal(t, DefaultTool, tl.Name)
	assert.Equal(t, Columns{1, 2, 3}, tl.CoordColumns)
	require.NoError(t, tl.Validate())

	for _, name := range []string{"restart.bcc.out", "dir/moment.Fe_T300.out", "STT.x.out"} {
		fl, err := tl.FieldFor(name)
		require.NoError(t, err, name)
		assert.Equal(t, Columns{4, 5, 6}, fl.Columns)
	}
	_, err = tl.FieldFor("averages.bcc.out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"averages"`)

	fl, err := tl.Field("moment")
	require.NoError(t, err)
	assert.Equal(t, "moment.*.out", fl.Pattern())
	_, err = tl.Field("energy")
	assert.Error(t, err)

	_, err = tt.Lookup("Spirit")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedTool))
	assert.Contains(t, err.Error(), `"Spirit"`)
	assert.Contains(t, err.Error(), DefaultTool)

	tt.Add(&ToolLayout{Name: "Vampire", CoordPattern: "atoms-coords.data"})
	assert.Equal(t, []string{DefaultTool, "Vampire"}, tt.Names())
}

func TestToolLayoutValidate(t *testing.T) {
	good := func() *ToolLayout {
		return &ToolLayout{
			Name:         "X",
			CoordPattern: "pos.*",
			CoordColumns: Columns{0, 1, 2},
			Fields:       []FieldLayout{{Prefix: "spin", Columns: Columns{3, 4, 5}}},
		}
	}
	require.NoError(t, good().Validate())
	testCases := []struct {
		name   string
		mutate func(tl *ToolLayout)
		errMsg string
	}{
		{"no name", func(tl *ToolLayout) { tl.Name = "" }, "no Name"},
		{"no pattern", func(tl *ToolLayout) { tl.CoordPattern = "" }, "CoordPattern is empty"},
		{"bad pattern", func(tl *ToolLayout) { tl.CoordPattern = "[" }, "CoordPattern"},
		{"no fields", func(tl *ToolLayout) { tl.Fields = nil }, "no Fields"},
		{"negative coord", func(tl *ToolLayout) { tl.CoordColumns[1] = -1 }, "negative column"},
		{"no prefix", func(tl *ToolLayout) { tl.Fields[0].Prefix = "" }, "no Prefix"},
		{"negative field", func(tl *ToolLayout) { tl.Fields[0].Columns[2] = -4 }, "negative column"},
		{"missing field columns", func(tl *ToolLayout) { tl.Fields[0].Columns = Columns{} }, "repeats column 0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tl := good()
			tc.mutate(tl)
			err := tl.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestColumnsUnmarshal(t *testing.T) {
	var fl FieldLayout
	require.NoError(t, yaml.Unmarshal([]byte("Prefix: spin\nColumns: [4, 5, 6]\n"), &fl))
	assert.Equal(t, Columns{4, 5, 6}, fl.Columns)

	for _, cols := range []string{"[4, 5]", "[4, 5, 6, 7]", "[]", "~"} {
		fl = FieldLayout{}
		err := yaml.Unmarshal([]byte("Prefix: spin\nColumns: "+cols+"\n"), &fl)
		require.Error(t, err, cols)
		assert.Contains(t, err.Error(), "expected 3", cols)
	}

	var tl ToolLayout
	err := yaml.Unmarshal([]byte("Name: X\nCoordColumns: [1, 2]\n"), &tl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 2 entries")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	_, err := Discover(dir, "coord.*.out", "coordinate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatch))
	assert.Contains(t, err.Error(), "no coordinate file found")

	coord := writeFile(t, dir, "coord.bcc.out", "1 0 0 0\n")
	fname, err := Discover(dir, "coord.*.out", "coordinate")
	require.NoError(t, err)
	assert.Equal(t, coord, fname)

	writeFile(t, dir, "coord.fcc.out", "1 0 0 0\n")
	_, err = Discover(dir, "coord.*.out", "coordinate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguous))
	assert.Contains(t, err.Error(), "coord.fcc.out")

	_, err = Discover(dir, "[", "coordinate")
	assert.Error(t, err)
}

func TestCheckReadable(t *testing.T) {
	dir := t.TempDir()
	err := CheckReadable(filepath.Join(dir, "nothing.out"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
	assert.Contains(t, err.Error(), "does not exist")

	err = CheckReadable(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")

	assert.NoError(t, CheckReadable(writeFile(t, dir, "ok.out", "1\n")))
}

func TestReadTables(t *testing.T) {
	dir := t.TempDir()
	tl, err := DefaultTools().Lookup(DefaultTool)
	require.NoError(t, err)

	coord := writeFile(t, dir, "coord.bcc.out",
		"1 0.0 0.0 0.0 1 1\n"+
			"2 1.0 0.0 0.0 1 1\n"+
			"3 0.5 0.5 2.5 1 1\n")
	ct, err := ReadCoordinates(coord, tl)
	require.NoError(t, err)
	assert.Equal(t, types.CoordinateTable{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0.5, Y: 0.5, Z: 2.5},
	}, ct)

	restart := writeFile(t, dir, "restart.bcc.out",
		"1 1 1 2.2 1.0 0.0 0.0\n"+
			"1 2 1 2.2 0.0 1.0 0.0\n"+
			"1 3 1 2.2 0.0 0.0 -1.0\n")
	vf, err := ReadVectorField(restart, tl)
	require.NoError(t, err)
	assert.Equal(t, types.VectorField{{X: 1}, {Y: 1}, {Z: -1}}, vf)

	_, err = ReadVectorField(filepath.Join(dir, "energy.bcc.out"), tl)
	assert.Error(t, err)

	_, err = ReadCoordinates(filepath.Join(dir, "coord.none.out"), tl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))

	nan := writeFile(t, dir, "moment.nan.out", "1 1 1 2.2 NaN 0.0 0.0\n")
	_, err = ReadVectorField(nan, tl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedTable))
	assert.Contains(t, err.Error(), "NaN")
}

func TestReadCommentedTables(t *testing.T) {
	dir := t.TempDir()
	tl, err := DefaultTools().Lookup(DefaultTool)
	require.NoError(t, err)

	coord := writeFile(t, dir, "coord.bcc.out",
		"# coordinates of bcc Fe\n"+
			"#  iatom  x  y  z  type  chem\n"+
			"\n"+
			"1 0.0 0.0 0.0 1 1\n"+
			"   # mid-table note\n"+
			"2 0.5 0.5 0.5 1 1\n"+
			"\n")
	ct, err := ReadCoordinates(coord, tl)
	require.NoError(t, err)
	assert.Equal(t, types.CoordinateTable{{}, {X: 0.5, Y: 0.5, Z: 0.5}}, ct)

	moment := writeFile(t, dir, "moment.bcc.out",
		"#########################################\n"+
			"# File type: R\n"+
			"# Simulation type: SD\n"+
			"# Number of atoms:       2\n"+
			"#  iter  ens  iatom  |m|  mx  my  mz\n"+
			"0 1 1 2.2 1.0 0.0 0.0\n"+
			"0 1 2 2.2 0.0 1.0 0.0\n"+
			"100 1 1 2.2 0.0 0.0 1.0\n"+
			"100 1 2 2.2 -1.0 0.0 0.0\n"+
			"\n")
	vf, err := ReadVectorField(moment, tl)
	require.NoError(t, err)
	assert.Equal(t, types.VectorField{{X: 1}, {Y: 1}, {Z: 1}, {X: -1}}, vf)

	headerOnly := writeFile(t, dir, "restart.empty.out", "# File type: R\n# no atoms\n\n")
	vf, err = ReadVectorField(headerOnly, tl)
	require.NoError(t, err)
	assert.Empty(t, vf)
}

func TestFilePrefix(t *testing.T) {
	assert.Equal(t, "moment", FilePrefix("/a/b.c/moment.x.out"))
	assert.Equal(t, "noext", FilePrefix("noext"))
}
