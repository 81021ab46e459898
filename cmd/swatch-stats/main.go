// swatch-stats prints the triangle count, file size and dimensions of
// rendered swatch STL files so that label sizes and fonts can be
// compared across a batch.
//
// Arguments may be STL files or directories, in which case every .stl
// file in the directory is reported.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gmlewis/filament-swatches/stl"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := &cobra.Command{
		Use:           "swatch-stats file.stl|dir...",
		Short:         "Summarize rendered swatch STL files",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stats(args, stdout)
		},
	}
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func stats(args []string, w io.Writer) error {
	filenames, err := expand(args)
	if err != nil {
		return err
	}

	var pts []string
	for _, filename := range filenames {
		s, err := stl.ReadSummary(filename)
		if err != nil {
			return fmt.Errorf("%v: %v", filename, err)
		}
		size := s.Size()
		pts = append(pts, fmt.Sprintf("%v\t%v\t%v\t%v\t%.2f\t%.2f\t%.2f",
			filepath.Base(filename), s.Format, s.Triangles, s.Bytes, size[0], size[1], size[2]))
	}

	if len(pts) > 0 {
		fmt.Fprintf(w, "%v\n", strings.Join(pts, "\n"))
	}
	return nil
}

func expand(args []string) ([]string, error) {
	var filenames []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			filenames = append(filenames, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.stl"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		filenames = append(filenames, matches...)
	}
	return filenames, nil
}
