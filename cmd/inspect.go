package cmd

import (
	"fmt"
	"io"

	"github.com/karpathyan/asd2vtk/mesh"
	"github.com/karpathyan/asd2vtk/vtu"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

// InspectCmd prints what a written file contains
var InspectCmd = &cobra.Command{
	Use:   "inspect file.vtu...",
	Short: "Print statistics of .vtu files and verify cell orientation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, fname := range args {
			if err := inspectFile(cmd.OutOrStdout(), fname); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(InspectCmd)
}

func inspectFile(w io.Writer, fname string) (err error) {
	var m *mesh.Mesh
	if m, err = vtu.ReadFile(fname); err != nil {
		return
	}
	fmt.Fprintf(w, "%s\n", fname)
	m.PrintStatistics(w)
	for _, va := range []*mesh.VectorArray{m.PointVectors, m.CellVectors} {
		if va == nil {
			continue
		}
		var nonZero int
		for _, v := range va.Values {
			if v != (r3.Vec{}) {
				nonZero++
			}
		}
		fmt.Fprintf(w, "  %s: %d tuples, %d non-zero\n", va.Name, len(va.Values), nonZero)
	}
	if err = m.CheckOrientation(); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	fmt.Fprintf(w, "  orientation: ok\n")
	return
}
