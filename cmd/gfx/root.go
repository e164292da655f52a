package main

import (
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/cmd/gfx/internal/config"
	"github.com/gogpu/gfx/internal/parallel"
)

// app holds the state shared by all subcommands.
type app struct {
	configPath string
	workers    int
	seed       int64
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "gfx",
		Short:        "Procedural, color and stylize filters for images",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "settings file (default ./"+config.FileName+")")
	flags.IntVar(&a.workers, "workers", 0, "worker goroutines, 0 for one per CPU")
	flags.Int64Var(&a.seed, "seed", 0, "random seed for filters without their own, 0 for time based")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newListCmd(a),
		newApplyCmd(a),
		newRunCmd(a),
		newSVGCmd(a),
	)
	return root
}

// setup loads the settings file, lets explicit flags override it and
// configures logging, the worker pool and the process-wide seed.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOptional(".", a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = max(a.workers, 0)
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	gfx.SetLogger(a.logger)

	if cfg.Workers > 0 {
		parallel.SetWorkers(cfg.Workers)
	}
	if cfg.Seed != 0 {
		gfx.SetSeed(cfg.Seed)
	}
	a.logger.Debug("configured", "workers", a.jobs(), "seed", gfx.Seed())
	return nil
}

// jobs returns how many files may be processed at once.
func (a *app) jobs() int {
	if a.cfg != nil && a.cfg.Workers > 0 {
		return a.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}
