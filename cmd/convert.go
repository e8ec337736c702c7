package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/karpathyan/asd2vtk/InputParameters"
	"github.com/karpathyan/asd2vtk/converter"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SnapshotCmd converts one restart file
var SnapshotCmd = &cobra.Command{
	Use:   "snapshot [vectorFile [tool]]",
	Short: "Convert a single moment snapshot into one .vtu file",
	Long: `
Converts one vector file (restart.*.out by default) and the coordinate file
into a single UnstructuredGrid, built sequentially.

asd2vtk snapshot restart.bcc.out UppASD`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, InputParameters.Snapshot, args)
	},
}

// SeriesCmd converts a multi-timestep moment file
var SeriesCmd = &cobra.Command{
	Use:   "series [vectorFile [tool]]",
	Short: "Convert every timestep of a moment file into its own .vtu file",
	Long: `
Splits the vector file (moment.*.out by default) into timesteps of one row per
atom and writes one UnstructuredGrid per timestep, using all CPUs.
The row count must be a whole multiple of the atom count.

asd2vtk series moment.bcc.out --workers 8`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, InputParameters.Series, args)
	},
}

func init() {
	rootCmd.AddCommand(SnapshotCmd)
	rootCmd.AddCommand(SeriesCmd)
}

func runConvert(cmd *cobra.Command, mode InputParameters.Mode, args []string) error {
	ip, err := processInput(viper.GetViper(), mode, args)
	if err != nil {
		return err
	}
	return convert(cmd.OutOrStdout(), ip, viper.GetString("profile"))
}

func convert(out io.Writer, ip *InputParameters.ConvertParameters, profileKind string) (err error) {
	if profileKind != "" {
		var stopper interface{ Stop() }
		if stopper, err = startProfile(profileKind, ip.OutputDir); err != nil {
			return
		}
		defer stopper.Stop()
	}
	ip.Print(out)
	_, err = converter.Run(ip, out)
	return
}

// processInput merges the job file, configuration and command line. Flag
// defaults never replace a value from the job file, only explicit settings do.
func processInput(v *viper.Viper, mode InputParameters.Mode, args []string) (ip *InputParameters.ConvertParameters, err error) {
	ip = InputParameters.NewConvertParameters()
	inputFile := v.GetString("input")
	if inputFile != "" {
		var data []byte
		if data, err = os.ReadFile(inputFile); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", inputFile, err)
		}
	}
	override := v.IsSet
	ip.Mode = mode
	if override("tool") {
		ip.Tool = v.GetString("tool")
	}
	if override("dir") {
		ip.Directory = v.GetString("dir")
	}
	if override("coordFile") {
		ip.CoordFile = v.GetString("coordFile")
	}
	if override("outDir") {
		ip.OutputDir = v.GetString("outDir")
	}
	if override("prefix") {
		ip.OutputPrefix = v.GetString("prefix")
	}
	if override("workers") {
		ip.Workers = v.GetInt("workers")
	}
	if override("replicate") {
		ip.ReplicatePointData = v.GetBool("replicate")
	}
	if override("check") {
		ip.CheckOrientation = v.GetBool("check")
	}
	if len(args) > 0 {
		ip.VectorFile = args[0]
	}
	if len(args) > 1 {
		ip.Tool = args[1]
	}
	if ip.Workers < 0 {
		return nil, fmt.Errorf("workers must be zero or positive, got %d", ip.Workers)
	}
	return
}

func startProfile(kind, dir string) (stopper interface{ Stop() }, err error) {
	if dir == "" {
		dir = "."
	}
	path := profile.ProfilePath(filepath.Clean(dir))
	switch kind {
	case "cpu":
		stopper = profile.Start(profile.CPUProfile, path, profile.NoShutdownHook)
	case "mem":
		stopper = profile.Start(profile.MemProfile, path, profile.NoShutdownHook)
	default:
		err = fmt.Errorf("unknown profile %q, use cpu or mem", kind)
	}
	return
}
