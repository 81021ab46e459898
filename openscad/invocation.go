package openscad

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gmlewis/filament-swatches/errs"
	"github.com/gmlewis/filament-swatches/samples"
)

const (
	// DefaultOutputDir holds the rendered models.
	DefaultOutputDir = "stl"
	// DefaultScadFile is the swatch model description.
	DefaultScadFile = "FilamentSamples.scad"
	// Ext is the extension of rendered models.
	Ext = ".stl"
)

var (
	stringFields   = []samples.Field{samples.Brand, samples.Type, samples.Color, samples.TempHotend, samples.TempBed}
	numericFields  = []samples.Field{samples.BrandSize, samples.TypeSize, samples.ColorSize}
	stringReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

	// Keeps every model directly inside the output directory.
	nameReplacer = strings.NewReplacer("/", "-", `\`, "-")
)

// Invocation is one OpenSCAD command line.
type Invocation struct {
	Path string   // executable
	Args []string // arguments; the model file is always last
	Row  samples.Row
	Out  string // output model path
}

// Argv returns the executable followed by its arguments.
func (inv *Invocation) Argv() []string {
	return append([]string{inv.Path}, inv.Args...)
}

func (inv *Invocation) String() string {
	return strings.Join(inv.Argv(), " ")
}

// Builder assembles invocations for sample rows.
type Builder struct {
	Executable string
	OutputDir  string
	ScadFile   string
}

// NewBuilder returns a Builder using the default output directory and
// model file relative to the working directory.
func NewBuilder(executable string) *Builder {
	return &Builder{
		Executable: executable,
		OutputDir:  DefaultOutputDir,
		ScadFile:   DefaultScadFile,
	}
}

// OutputPath returns where the model for row is written. Path
// separators within fields become "-".
func (b *Builder) OutputPath(row samples.Row) string {
	return filepath.Join(b.OutputDir, nameReplacer.Replace(row.Name())+Ext)
}

// Build assembles the invocation for row. It fails with a MalformedRow
// error when a required field is missing or a label size is not a
// number.
func (b *Builder) Build(row samples.Row) (*Invocation, error) {
	out := b.OutputPath(row)
	args := []string{"-o", out}
	for _, f := range stringFields {
		v, err := row.Required(f)
		if err != nil {
			return nil, err
		}
		args = append(args, "-D", StringDefine(f.String(), v))
	}
	for _, f := range numericFields {
		v, ok := row.Optional(f)
		if !ok {
			continue
		}
		if !isNumber(v) {
			return nil, errs.NewMalformedRowError(row.Line, f.String(), "not a number")
		}
		args = append(args, "-D", Define(f.String(), v))
	}
	// OpenSCAD requires the input file as the final argument.
	args = append(args, b.ScadFile)

	return &Invocation{
		Path: b.Executable,
		Args: args,
		Row:  row,
		Out:  out,
	}, nil
}

// isNumber reports whether v is a finite decimal number.
func isNumber(v string) bool {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return false
	}
	return !strings.ContainsAny(v, "xX")
}

// Define returns a KEY=value definition with value passed through as an
// OpenSCAD expression.
func Define(key, value string) string {
	return key + "=" + value
}

// StringDefine returns a KEY="value" definition whose value is an
// OpenSCAD string literal.
func StringDefine(key, value string) string {
	return key + `="` + stringReplacer.Replace(value) + `"`
}
