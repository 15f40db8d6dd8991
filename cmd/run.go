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

	"github.com/spf13/cobra"

	"github.com/ThunderStrikeXX/rhoPISO/config"
	"github.com/ThunderStrikeXX/rhoPISO/fluid"
	"github.com/ThunderStrikeXX/rhoPISO/output"
	"github.com/ThunderStrikeXX/rhoPISO/solver"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the compressible PISO solver to completion",
	Long: `
Integrates the pipe-segment vapor flow from its initial condition to the
configured end time, reporting per-step diagnostics and writing the final
velocity, pressure and temperature fields to the output file.

rhoPISO run `,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "rhoPISO: invalid configuration:", err)
			os.Exit(1)
		}
		cfg.Print()

		d := solver.NewDriver(&cfg, fluid.SodiumProvider{})
		elapsed, err := d.Run()
		if err != nil {
			fmt.Fprintln(os.Stderr, "rhoPISO: run failed:", err)
			os.Exit(1)
		}
		fmt.Printf("rhoPISO: completed %d steps in %s\n", d.Step, elapsed)

		f := d.Fields
		err = output.WriteSolution(cfg.OutputPath, solver.Data(f.U), solver.Data(f.P), solver.Data(f.T))
		if err != nil {
			fmt.Fprintln(os.Stderr, "rhoPISO: failed to write solution:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	defaults := config.Defaults()

	RunCmd.Flags().String("configFile", "", "YAML run configuration, overriding the built-in defaults")
	RunCmd.Flags().Float64("length", defaults.Length, "pipe segment length [m]")
	RunCmd.Flags().Int("cells", defaults.Cells, "number of grid cells")
	RunCmd.Flags().Float64("dt", defaults.Dt, "time step [s]")
	RunCmd.Flags().Float64("tMax", defaults.TMax, "end time [s]")
	RunCmd.Flags().Int("maxIter", defaults.MaxIter, "PISO outer-loop iteration cap per step")
	RunCmd.Flags().Int("correctorIter", defaults.CorrectorIter, "PISO inner corrector passes per outer iteration")
	RunCmd.Flags().Float64("tolerance", defaults.Tolerance, "mass-imbalance residual convergence tolerance")
	RunCmd.Flags().Float64("rv", defaults.Rv, "specific gas constant [J/(kg*K)]")
	RunCmd.Flags().Float64("pOutlet", defaults.POutlet, "Dirichlet outlet pressure [Pa]")
	RunCmd.Flags().Bool("rhieChow", defaults.RhieChow, "enable Rhie-Chow face-velocity smoothing")
	RunCmd.Flags().Bool("turbulence", defaults.Turbulence, "enable the k-omega turbulence closure")
	RunCmd.Flags().String("output", defaults.OutputPath, "path to write the final solution file")
	RunCmd.Flags().String("logLevel", defaults.LogLevel, "logrus level: debug, info, warn, error")
	RunCmd.Flags().Int("maxWorkers", defaults.MaxWorkers, "goroutine fan-out per assembly sweep, 0 = runtime.NumCPU()")
}

func loadConfig(cmd *cobra.Command) config.RunConfig {
	cfg := config.Defaults()

	path, _ := cmd.Flags().GetString("configFile")
	if path == "" {
		path = cfgFile
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rhoPISO: cannot read config file:", err)
			os.Exit(1)
		}
		if err := cfg.Parse(data); err != nil {
			fmt.Fprintln(os.Stderr, "rhoPISO: cannot parse config file:", err)
			os.Exit(1)
		}
	}

	if v, err := cmd.Flags().GetFloat64("length"); err == nil && cmd.Flags().Changed("length") {
		cfg.Length = v
	}
	if v, err := cmd.Flags().GetInt("cells"); err == nil && cmd.Flags().Changed("cells") {
		cfg.Cells = v
	}
	if v, err := cmd.Flags().GetFloat64("dt"); err == nil && cmd.Flags().Changed("dt") {
		cfg.Dt = v
	}
	if v, err := cmd.Flags().GetFloat64("tMax"); err == nil && cmd.Flags().Changed("tMax") {
		cfg.TMax = v
	}
	if v, err := cmd.Flags().GetInt("maxIter"); err == nil && cmd.Flags().Changed("maxIter") {
		cfg.MaxIter = v
	}
	if v, err := cmd.Flags().GetInt("correctorIter"); err == nil && cmd.Flags().Changed("correctorIter") {
		cfg.CorrectorIter = v
	}
	if v, err := cmd.Flags().GetFloat64("tolerance"); err == nil && cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = v
	}
	if v, err := cmd.Flags().GetFloat64("rv"); err == nil && cmd.Flags().Changed("rv") {
		cfg.Rv = v
	}
	if v, err := cmd.Flags().GetFloat64("pOutlet"); err == nil && cmd.Flags().Changed("pOutlet") {
		cfg.POutlet = v
	}
	if v, err := cmd.Flags().GetBool("rhieChow"); err == nil && cmd.Flags().Changed("rhieChow") {
		cfg.RhieChow = v
	}
	if v, err := cmd.Flags().GetBool("turbulence"); err == nil && cmd.Flags().Changed("turbulence") {
		cfg.Turbulence = v
	}
	if v, err := cmd.Flags().GetString("output"); err == nil && cmd.Flags().Changed("output") {
		cfg.OutputPath = v
	}
	if v, err := cmd.Flags().GetString("logLevel"); err == nil && cmd.Flags().Changed("logLevel") {
		cfg.LogLevel = v
	}
	if v, err := cmd.Flags().GetInt("maxWorkers"); err == nil && cmd.Flags().Changed("maxWorkers") {
		cfg.MaxWorkers = v
	}

	return cfg
}
