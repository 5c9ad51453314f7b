package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-velan/gather"
	"github.com/cwbudde/algo-velan/internal/config"
	"github.com/cwbudde/algo-velan/internal/interp"
	"github.com/cwbudde/algo-velan/internal/logging"
	"github.com/cwbudde/algo-velan/picks"
	"github.com/cwbudde/algo-velan/semblance"
	"github.com/cwbudde/algo-velan/su"
	"github.com/cwbudde/algo-velan/velan"
)

var errNothingToProcess = velan.ErrNothingToProcess

type flags struct {
	configPath   string
	workers      int
	outDir       string
	velocityOut  string
	coherenceOut string
	stackOut     string
	interp       string
	byteOrder    string
	midpoint     float64
	picksDB      string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "cmp [flags] C0 C1 NC APH TAU INPUT CDP0 CDP1",
		Short: "Constant-velocity semblance scan over CMP gathers",
		Long: `cmp groups the traces of an SU file by CDP, drops traces beyond the
half-offset aperture APH, and for every CDP in [CDP0, CDP1] scans NC trial
velocities in [C0, C1) at every time sample. It writes the best velocity,
its semblance and the stack at that velocity to three SU files whose k-th
records all belong to the same CDP.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != config.NumArgs {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			params, err := config.ParseParams(args)
			if err != nil {
				return err
			}
			return runScan(cmd.Context(), cfg, params)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML settings file")
	fl.IntVar(&f.workers, "workers", def.Workers, "goroutines per CDP scan (0 = GOMAXPROCS)")
	fl.StringVar(&f.outDir, "out-dir", def.OutDir, "directory for relative output paths")
	fl.StringVar(&f.velocityOut, "velocity-out", def.VelocityOut, "best-velocity output file")
	fl.StringVar(&f.coherenceOut, "coherence-out", def.CoherenceOut, "coherence output file")
	fl.StringVar(&f.stackOut, "stack-out", def.StackOut, "best-stack output file")
	fl.StringVar(&f.interp, "interp", def.Interp, "amplitude interpolation: linear or hermite")
	fl.StringVar(&f.byteOrder, "byte-order", def.ByteOrder, "SU byte order: little or big")
	fl.Float64Var(&f.midpoint, "map", def.MidpointAperture, "midpoint-direction aperture (reserved, not applied)")
	fl.StringVar(&f.picksDB, "picks-db", def.PicksDB, "SQLite file receiving every pick (disabled when empty)")
	fl.BoolVarP(&f.verbose, "verbose", "v", def.Verbose, "debug logging")
	return cmd
}

// resolveConfig layers explicitly set flags over the settings file over defaults.
func resolveConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}
	fl := cmd.Flags()
	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	set("workers", func() { cfg.Workers = f.workers })
	set("out-dir", func() { cfg.OutDir = f.outDir })
	set("velocity-out", func() { cfg.VelocityOut = f.velocityOut })
	set("coherence-out", func() { cfg.CoherenceOut = f.coherenceOut })
	set("stack-out", func() { cfg.StackOut = f.stackOut })
	set("interp", func() { cfg.Interp = f.interp })
	set("byte-order", func() { cfg.ByteOrder = f.byteOrder })
	set("map", func() { cfg.MidpointAperture = f.midpoint })
	set("picks-db", func() { cfg.PicksDB = f.picksDB })
	set("verbose", func() { cfg.Verbose = f.verbose })
	return cfg, cfg.Validate()
}

func runScan(ctx context.Context, cfg config.Config, p config.Params) (err error) {
	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	feat := cpu.DetectFeatures()
	logger.Debug("vector kernels",
		zap.String("arch", feat.Architecture),
		zap.Bool("avx2", feat.HasAVX2),
		zap.Bool("neon", feat.HasNEON),
	)

	order, err := su.ParseByteOrder(cfg.ByteOrder)
	if err != nil {
		return err
	}
	kind, err := interp.ParseKind(cfg.Interp)
	if err != nil {
		return err
	}

	set, stats, err := gather.IngestFile(p.Input, order, p.APH)
	if err != nil {
		return err
	}
	logger.Info("ingested",
		zap.String("input", p.Input),
		zap.Int("traces", stats.Read),
		zap.Int("kept", stats.Kept),
		zap.Int("discarded", stats.Discarded),
		zap.Int("cdps", set.Len()),
	)
	if len(set.InRange(p.CDP0, p.CDP1)) == 0 {
		return errNothingToProcess
	}

	sinks, closeOutputs, err := openOutputs(cfg, order)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutputs(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	scanner, err := velan.NewScanner(p.C0, p.C1, p.NC, semblance.New(semblance.WithInterpolation(kind)))
	if err != nil {
		return err
	}

	progress := logging.NewProgress(os.Stderr, logger)
	opts := []velan.Option{
		velan.WithWorkers(cfg.Workers),
		velan.WithLogger(logger),
		velan.WithProgress(progress),
	}

	if cfg.PicksDB != "" {
		store, serr := picks.Open(cfg.PicksDB)
		if serr != nil {
			return serr
		}
		defer func() {
			if cerr := store.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		run, serr := store.BeginRun(ctx, picks.RunInfo{Input: p.Input, C0: p.C0, C1: p.C1, NC: p.NC, APH: p.APH, Tau: p.Tau})
		if serr != nil {
			return serr
		}
		logger.Info("recording picks", zap.String("db", cfg.PicksDB), zap.String("run", run.String()))
		opts = append(opts, velan.WithPickSink(store))
	}

	runner := velan.NewRunner(scanner, gather.ApertureParams{
		HalfOffset: p.APH,
		Tau:        p.Tau,
		Midpoint:   cfg.MidpointAperture,
	}, sinks, opts...)

	sum, err := runner.Run(ctx, set, p.CDP0, p.CDP1)
	progress.Done()
	if err != nil {
		return err
	}
	logger.Info("scan complete",
		zap.Int("processed", sum.Processed),
		zap.Int("skipped", sum.Skipped),
		zap.Duration("elapsed", sum.Elapsed),
	)
	return nil
}

// openOutputs creates the three output files. The runner flushes each CDP,
// so the returned closer only closes the files.
func openOutputs(cfg config.Config, order binary.ByteOrder) (velan.Sinks, func() error, error) {
	vPath, cPath, sPath := cfg.OutputPaths()
	var files []*os.File
	closeAll := func() error {
		var errs []error
		for _, f := range files {
			errs = append(errs, f.Close())
		}
		return errors.Join(errs...)
	}
	create := func(path string) (*su.Writer, error) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create output dir for %q: %w", path, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create output %q: %w", path, err)
		}
		files = append(files, f)
		return su.NewWriter(f, order), nil
	}

	var sinks velan.Sinks
	var err error
	if sinks.Velocity, err = create(vPath); err != nil {
		return sinks, nil, errors.Join(err, closeAll())
	}
	if sinks.Coherence, err = create(cPath); err != nil {
		return sinks, nil, errors.Join(err, closeAll())
	}
	if sinks.Stack, err = create(sPath); err != nil {
		return sinks, nil, errors.Join(err, closeAll())
	}
	return sinks, closeAll, nil
}
