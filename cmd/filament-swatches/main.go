// filament-swatches renders one 3D-printable filament sample swatch per
// row of a CSV file by running OpenSCAD on FilamentSamples.scad.
//
// Each row holds a brand, material type, color, hot-end temperature and
// bed temperature, optionally followed by brand, type and color label
// font sizes. Lines starting with "#" are ignored.
//
// With no argument, samples.csv beside the program is used and models
// are written to its stl directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gmlewis/filament-swatches/config"
	"github.com/gmlewis/filament-swatches/errs"
	"github.com/gmlewis/filament-swatches/openscad"
	"github.com/gmlewis/filament-swatches/samples"
	"github.com/gmlewis/filament-swatches/zipper"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Replaced by tests.
var (
	programDir        = config.ProgramDir
	resolveExecutable = func() (string, error) {
		return openscad.Resolve(openscad.HostPlatform(), openscad.OSProber{}, openscad.OSProber{})
	}
)

type options struct {
	configFile   string
	openscad     string
	outputDir    string
	scadFile     string
	dryRun       bool
	inspect      bool
	zip          bool
	noHeaderSkip bool
	verbose      bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "filament-swatches [samples.csv]",
		Short: "Render filament sample swatches with OpenSCAD",
		Long: `filament-swatches reads filament samples from a CSV file and runs OpenSCAD
once per row to render an STL swatch labelled with the brand, material,
color and print temperatures.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, opts, args, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	flags.StringVar(&opts.openscad, "openscad", "", "OpenSCAD executable (default is to search the usual install locations)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "Output directory for STL files (default is stl beside the program)")
	flags.StringVar(&opts.scadFile, "scad", "", "Swatch model description (default is FilamentSamples.scad beside the program)")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Log the OpenSCAD commands without running them")
	flags.BoolVar(&opts.inspect, "inspect", false, "Log triangle count and size of each rendered STL file")
	flags.BoolVar(&opts.zip, "zip", false, "Bundle the rendered STL files into "+zipper.DefaultName)
	flags.BoolVar(&opts.noHeaderSkip, "no-header-skip", false, "Render a leading brand/manufacturer header row instead of skipping it")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug output")
	return cmd
}

func loadConfig(cmd *cobra.Command, opts *options, args []string) (*config.Config, error) {
	baseDir, err := programDir()
	if err != nil {
		return nil, err
	}

	cfg := config.Default(baseDir)
	if opts.configFile != "" {
		if cfg, err = config.Load(opts.configFile, baseDir); err != nil {
			return nil, err
		}
	}

	// Paths given on the command line are relative to the working directory.
	abs := func(p string) string {
		if a, err := filepath.Abs(p); err == nil {
			return a
		}
		return p
	}
	flags := cmd.Flags()
	if len(args) == 1 {
		cfg.Input = abs(args[0])
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = abs(opts.outputDir)
	}
	if flags.Changed("scad") {
		cfg.ScadFile = abs(opts.scadFile)
	}
	if flags.Changed("openscad") {
		cfg.OpenSCAD = opts.openscad
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}
	if flags.Changed("inspect") {
		cfg.Inspect = opts.inspect
	}
	if flags.Changed("zip") {
		cfg.Zip = opts.zip
	}
	if flags.Changed("no-header-skip") {
		cfg.SkipHeader = !opts.noHeaderSkip
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	return cfg, cfg.Validate()
}

func generate(cmd *cobra.Command, opts *options, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Verbose)
	defer logger.Sync()

	ctx := cmd.Context()
	logger.Info("using CSV file", zap.String("input", cfg.InputPath()))

	executable, err := findOpenSCAD(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Verbose && !cfg.DryRun {
		if version, err := openscad.Version(ctx, executable); err != nil {
			logger.Warn("unable to query OpenSCAD version", zap.Error(err))
		} else {
			logger.Debug("OpenSCAD version", zap.String("version", version))
		}
	}

	f, err := samples.Open(cfg.InputPath())
	if err != nil {
		return err
	}
	defer f.Close()
	f.SkipHeader = cfg.SkipHeader

	if _, err := os.Stat(cfg.ScadPath()); err != nil {
		return errs.NewNotFoundError(cfg.ScadPath(), err)
	}

	builder := &openscad.Builder{
		Executable: executable,
		OutputDir:  cfg.OutputPath(),
		ScadFile:   cfg.ScadPath(),
	}
	d := openscad.NewDispatcher(builder,
		openscad.WithLogger(logger),
		openscad.WithRunner(&openscad.ExecRunner{Stdout: stdout, Stderr: stderr}),
		openscad.WithDryRun(cfg.DryRun),
		openscad.WithInspect(cfg.Inspect),
	)
	report, err := d.Run(ctx, f)
	if err != nil {
		return err
	}

	if cfg.Zip && len(report.Rendered) > 0 {
		zipName := filepath.Join(cfg.OutputPath(), zipper.DefaultName)
		logger.Info("writing bundle", zap.String("zip", zipName), zap.Int("files", len(report.Rendered)))
		if err := zipper.Bundle(zipName, report.Rendered); err != nil {
			return err
		}
	}

	logger.Info("Done.",
		zap.Int("rendered", len(report.Rendered)),
		zap.Int("planned", len(report.Invocations)),
		zap.Int("skipped", report.Skipped),
		zap.Bool("dry_run", report.DryRun),
	)
	return nil
}

func findOpenSCAD(cfg *config.Config, logger *zap.Logger) (string, error) {
	if cfg.OpenSCAD != "" {
		logger.Debug("using configured OpenSCAD", zap.String("executable", cfg.OpenSCAD))
		return cfg.OpenSCAD, nil
	}

	logger.Debug("dispatch state", zap.String("state", string(openscad.StateResolving)))
	executable, err := resolveExecutable()
	if err != nil {
		if !cfg.DryRun {
			return "", err
		}
		logger.Warn("OpenSCAD not found, continuing dry run", zap.Error(err))
		return openscad.Command, nil
	}
	logger.Debug("resolved OpenSCAD", zap.String("executable", executable))
	return executable, nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
