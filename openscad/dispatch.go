package openscad

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gmlewis/filament-swatches/errs"
	"github.com/gmlewis/filament-swatches/samples"
	"github.com/gmlewis/filament-swatches/stl"
	"go.uber.org/zap"
)

// State is a step of a dispatch run.
type State string

const (
	StateIdle        State = "idle"
	StateResolving   State = "resolving-path"
	StateReady       State = "ready"
	StateBuilding    State = "building-args"
	StateDispatching State = "dispatching"
	StateRowDone     State = "row-done"
	StateAborted     State = "aborted"
	StateDone        State = "done"
)

// RowSource yields sample rows until io.EOF.
type RowSource interface {
	Next() (samples.Row, error)
}

// Runner executes one invocation to completion.
type Runner interface {
	Run(ctx context.Context, inv *Invocation) error
}

// ExecRunner runs invocations as child processes, streaming their
// output to Stdout and Stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts inv and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, inv *Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Version returns the output of "executable --version". OpenSCAD prints
// it on stderr.
func Version(ctx context.Context, executable string) (string, error) {
	buf, err := exec.CommandContext(ctx, executable, "--version").CombinedOutput()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(buf)), nil
}

// Report summarizes a dispatch run.
type Report struct {
	Invocations []*Invocation
	Rendered    []string // output paths written
	Skipped     int
	DryRun      bool
}

// Dispatcher renders sample rows one at a time.
type Dispatcher struct {
	builder *Builder
	runner  Runner
	logger  *zap.Logger
	dryRun  bool
	inspect bool
	state   State
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(d *Dispatcher) { d.runner = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithDryRun builds invocations without running them.
func WithDryRun(dryRun bool) Option {
	return func(d *Dispatcher) { d.dryRun = dryRun }
}

// WithInspect logs an STL summary of each rendered model.
func WithInspect(inspect bool) Option {
	return func(d *Dispatcher) { d.inspect = inspect }
}

// NewDispatcher returns a Dispatcher for the resolved builder
// executable.
func NewDispatcher(b *Builder, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		builder: b,
		runner:  &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// State returns the current step of the run.
func (d *Dispatcher) State() State {
	return d.state
}

func (d *Dispatcher) setState(s State, fields ...zap.Field) {
	d.state = s
	d.logger.Debug("dispatch state", append([]zap.Field{zap.String("state", string(s))}, fields...)...)
}

// Run renders every row from rows. The output directory is created
// first. The first error stops the run; rows after it are not read.
func (d *Dispatcher) Run(ctx context.Context, rows RowSource) (*Report, error) {
	report := &Report{DryRun: d.dryRun}
	if err := os.MkdirAll(d.builder.OutputDir, 0755); err != nil {
		d.setState(StateAborted)
		return report, err
	}
	d.setState(StateReady, zap.String("executable", d.builder.Executable))

	for {
		row, err := rows.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.setState(StateAborted)
			return report, err
		}

		d.setState(StateBuilding, zap.Int("line", row.Line))
		inv, err := d.builder.Build(row)
		if err != nil {
			d.setState(StateAborted)
			return report, err
		}
		report.Invocations = append(report.Invocations, inv)

		if d.dryRun {
			d.logger.Info("would run OpenSCAD", zap.Strings("argv", inv.Argv()))
			continue
		}

		d.setState(StateDispatching, zap.String("row", row.Name()))
		d.logger.Info("running OpenSCAD", zap.Strings("argv", inv.Argv()))
		if err := d.runner.Run(ctx, inv); err != nil {
			d.setState(StateAborted)
			return report, errs.NewRenderFailedError(row.Name(), row.Line, err)
		}
		report.Rendered = append(report.Rendered, inv.Out)
		d.setState(StateRowDone, zap.String("out", inv.Out))

		if d.inspect {
			d.logSummary(inv.Out)
		}
	}

	if s, ok := rows.(interface{ Skipped() int }); ok {
		report.Skipped = s.Skipped()
	}
	d.setState(StateDone)
	return report, nil
}

func (d *Dispatcher) logSummary(filename string) {
	s, err := stl.ReadSummary(filename)
	if err != nil {
		d.logger.Warn("unable to summarize model", zap.String("out", filename), zap.Error(err))
		return
	}
	size := s.Size()
	d.logger.Info("rendered model",
		zap.String("out", filename),
		zap.String("format", s.Format.String()),
		zap.Int("triangles", s.Triangles),
		zap.Float32s("size_mm", size[:]),
	)
}
