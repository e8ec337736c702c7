/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/karpathyan/asd2vtk/export"
	"github.com/karpathyan/asd2vtk/readers"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error // set by initConfig, returned before any command runs
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asd2vtk",
	Short: "Convert atomistic spin dynamics output to VTK unstructured grids",
	Long: `
Reads the coordinate and moment files written by an atomistic spin dynamics
code and writes VTK XML UnstructuredGrid (.vtu) files, one cube per atom,
carrying the atom's moment as point and cell data.

asd2vtk snapshot                   # coord.*.out + restart.*.out -> one file
asd2vtk series moment.bcc.out      # one file per timestep, in parallel`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.asd2vtk.yaml)")
	pf.StringP("input", "I", "", "YAML job file with conversion parameters and extra tool layouts")
	pf.StringP("tool", "t", readers.DefaultTool, "simulation tool that wrote the input files")
	pf.StringP("dir", "D", "", "directory searched for input files (default is the current directory)")
	pf.StringP("coordFile", "C", "", "coordinate file, discovered with the tool's pattern when empty")
	pf.StringP("outDir", "o", "", "directory for the written files")
	pf.StringP("prefix", "p", export.DefaultPrefix, "output file name prefix")
	pf.IntP("workers", "w", 0, "parallel workers for series conversion, 0 = one per CPU")
	pf.Bool("replicate", false, "write each moment to all 8 corners of its cube, not only the first")
	pf.Bool("check", false, "verify the orientation of every cell before writing")
	pf.String("profile", "", "write a profile of the run: cpu or mem")
	for _, name := range flagKeys {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

var flagKeys = []string{
	"input", "tool", "dir", "coordFile", "outDir", "prefix",
	"workers", "replicate", "check", "profile",
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configErr = nil
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if home, err := homedir.Dir(); err == nil {
		// Search config in home directory with name ".asd2vtk" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".asd2vtk")
	}

	viper.SetEnvPrefix("ASD2VTK")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		configErr = fmt.Errorf("reading config file %s: %w", cfgFile, err)
	}
}
