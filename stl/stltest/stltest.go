// Package stltest provides STL models for tests.
package stltest

import (
	"github.com/gmlewis/filament-swatches/stl"
	"github.com/go-gl/mathgl/mgl32"
)

// Box returns the six-sided box spanning min and max as twelve
// outward-facing triangles.
func Box(min, max mgl32.Vec3) []stl.Tri {
	p := func(x, y, z int) mgl32.Vec3 {
		v := min
		if x == 1 {
			v[0] = max[0]
		}
		if y == 1 {
			v[1] = max[1]
		}
		if z == 1 {
			v[2] = max[2]
		}
		return v
	}
	quad := func(n, a, b, c, d mgl32.Vec3) []stl.Tri {
		return []stl.Tri{{N: n, V1: a, V2: b, V3: c}, {N: n, V1: a, V2: c, V3: d}}
	}

	var tris []stl.Tri
	tris = append(tris, quad(mgl32.Vec3{0, 0, -1}, p(0, 0, 0), p(0, 1, 0), p(1, 1, 0), p(1, 0, 0))...)
	tris = append(tris, quad(mgl32.Vec3{0, 0, 1}, p(0, 0, 1), p(1, 0, 1), p(1, 1, 1), p(0, 1, 1))...)
	tris = append(tris, quad(mgl32.Vec3{0, -1, 0}, p(0, 0, 0), p(1, 0, 0), p(1, 0, 1), p(0, 0, 1))...)
	tris = append(tris, quad(mgl32.Vec3{0, 1, 0}, p(0, 1, 0), p(0, 1, 1), p(1, 1, 1), p(1, 1, 0))...)
	tris = append(tris, quad(mgl32.Vec3{-1, 0, 0}, p(0, 0, 0), p(0, 0, 1), p(0, 1, 1), p(0, 1, 0))...)
	tris = append(tris, quad(mgl32.Vec3{1, 0, 0}, p(1, 0, 0), p(1, 1, 0), p(1, 1, 1), p(1, 0, 1))...)
	return tris
}

// WriteBox writes Box(min, max) to filename as a binary STL file.
func WriteBox(filename string, min, max mgl32.Vec3) error {
	w, err := stl.New(filename)
	if err != nil {
		return err
	}
	tris := Box(min, max)
	for i := range tris {
		if err := w.Write(&tris[i]); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
