// Command cdt3d evolves a layered triangulation under Monte Carlo
// surgery: it loads a run configuration and a starting geometry, runs
// thermalization and measurement sweeps, streams observables to the
// output directory and exports the final geometry.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cdt3d/config"
	"github.com/katalvlaran/cdt3d/mesh"
	"github.com/katalvlaran/cdt3d/montecarlo"
	"github.com/katalvlaran/cdt3d/observables"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cdt3d",
		Short:         "Causal dynamical triangulations in 2+1 dimensions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation described by a YAML config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "run.yaml", "path to the run configuration")
	return cmd
}

func run(cfg config.Config) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	in, err := os.Open(cfg.InFile)
	if err != nil {
		return fmt.Errorf("open geometry: %w", err)
	}
	u, err := mesh.Load(in,
		mesh.WithSeed(cfg.Seed),
		mesh.WithStrictness(cfg.Strictness),
	)
	in.Close()
	if err != nil {
		return err
	}
	log.Info("geometry loaded",
		"file", cfg.InFile,
		"vertices", u.VertexCount(),
		"tetrahedra", u.TetraCount(),
		"slices", u.SliceCount())

	opts := []montecarlo.Option{
		montecarlo.WithLogger(log),
		montecarlo.WithEpsilon(cfg.Epsilon),
	}
	if cfg.TargetVolume > 0 {
		opts = append(opts, montecarlo.WithTargetVolume(cfg.TargetVolume))
	}
	if cfg.Target2Volume > 0 {
		opts = append(opts, montecarlo.WithSliceTargetVolume(cfg.Target2Volume))
	}
	if cfg.OutFile != "" {
		opts = append(opts, montecarlo.WithExporter(10, func(u *mesh.Universe) error {
			return exportTo(u, cfg.OutFile)
		}))
	}
	sim, err := montecarlo.New(u, cfg.K0, cfg.K3, opts...)
	if err != nil {
		return err
	}

	w, err := observables.NewWriter(cfg.OutputDir, cfg.FileID)
	if err != nil {
		return err
	}
	sim.Register3D(observables.NewVolumeProfile(w))
	if cfg.Target2Volume > 0 {
		sim.Register2D(observables.NewCoordinationAtVolume(w, cfg.Target2Volume))
	} else {
		sim.Register2D(observables.NewCoordination(w))
	}
	sim.Register2D(observables.NewRicci2d(w, u.Rand(), cfg.Target2Volume))

	if err := sim.Run(cfg.ThermalSweeps, cfg.MeasureSweeps, cfg.KSteps); err != nil {
		return err
	}
	log.Info("run complete",
		"tetrahedra", u.TetraCount(),
		"k3", sim.K3())

	if cfg.OutFile != "" {
		if err := exportTo(u, cfg.OutFile); err != nil {
			return err
		}
		log.Info("geometry exported", "file", cfg.OutFile)
	}
	return nil
}

func exportTo(u *mesh.Universe, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export geometry: %w", err)
	}
	if err := u.Export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
