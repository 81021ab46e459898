// Package openscad builds and runs OpenSCAD invocations that render
// filament swatches.
package openscad

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/gmlewis/filament-swatches/errs"
)

const (
	// Command is the bare OpenSCAD command, looked up on PATH.
	Command = "openscad"
	// WindowsPath is the default OpenSCAD install location on Windows.
	WindowsPath = `C:\Program Files\OpenSCAD\openscad.exe`
	// MacAppPath is the OpenSCAD binary inside the macOS application
	// bundle, relative to an Applications folder's parent.
	MacAppPath = "/Applications/OpenSCAD.app/Contents/MacOS/OpenSCAD"

	versionFlag = "-v"
)

// Platform identifies the host that OpenSCAD is resolved for.
type Platform struct {
	GOOS string // runtime.GOOS value
	Home string // user home directory, used on darwin
}

// HostPlatform returns the platform of the running process.
func HostPlatform() Platform {
	home, _ := os.UserHomeDir()
	return Platform{GOOS: runtime.GOOS, Home: home}
}

// FileProber reports whether an executable file exists.
type FileProber interface {
	Exists(path string) bool
}

// ProcessProber runs a command to completion and reports whether it
// succeeded.
type ProcessProber interface {
	Probe(name string, args ...string) error
}

// FileProberFunc adapts a function to FileProber.
type FileProberFunc func(path string) bool

// Exists calls f(path).
func (f FileProberFunc) Exists(path string) bool { return f(path) }

// ProcessProberFunc adapts a function to ProcessProber.
type ProcessProberFunc func(name string, args ...string) error

// Probe calls f(name, args...).
func (f ProcessProberFunc) Probe(name string, args ...string) error { return f(name, args...) }

// OSProber probes the real filesystem and process table.
type OSProber struct{}

var (
	_ FileProber    = OSProber{}
	_ ProcessProber = OSProber{}
)

// Exists reports whether path names an existing regular file.
func (OSProber) Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// Probe runs the command with its output discarded.
func (OSProber) Probe(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// Resolve locates the OpenSCAD executable for platform p.
//
// Windows uses the fixed install path and Linux (and any other Unix)
// uses the bare command, found on PATH when it runs. On darwin the
// system and user application bundles are tried in order, then the bare
// command is accepted if it answers a version probe. When none of them
// is usable Resolve returns an ExecutableNotFound error.
func Resolve(p Platform, fs FileProber, proc ProcessProber) (string, error) {
	switch p.GOOS {
	case "windows":
		return WindowsPath, nil
	case "darwin":
		candidates := []string{MacAppPath}
		if p.Home != "" {
			candidates = append(candidates, filepath.Join(p.Home, MacAppPath))
		}
		for _, path := range candidates {
			if fs.Exists(path) {
				return path, nil
			}
		}
		if err := proc.Probe(Command, versionFlag); err == nil {
			return Command, nil
		}
		tried := append(candidates, Command+" "+versionFlag)
		return "", errs.NewExecutableNotFoundError(p.GOOS, tried)
	default:
		return Command, nil
	}
}
