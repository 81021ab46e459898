package stl_test

import (
	"path/filepath"
	"testing"

	"github.com/gmlewis/filament-swatches/stl"
	"github.com/gmlewis/filament-swatches/stl/stltest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "box.stl")
	require.NoError(t, stltest.WriteBox(filename, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{30, 20, 1.5}))

	s, err := stl.ReadSummary(filename)
	require.NoError(t, err)
	assert.Equal(t, stl.Binary, s.Format)
	assert.Equal(t, 12, s.Triangles)
	assert.Equal(t, 80+4+12*50, s.Bytes)
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, s.Min)
	assert.Equal(t, mgl32.Vec3{30, 20, 1.5}, s.Max)
	assert.Equal(t, mgl32.Vec3{31, 20, 1.5}, s.Size())
}

func TestBox(t *testing.T) {
	tris := stltest.Box(mgl32.Vec3{}, mgl32.Vec3{2, 3, 4})
	require.Len(t, tris, 12)
	for _, tri := range tris {
		edge1 := tri.V2.Sub(tri.V1)
		edge2 := tri.V3.Sub(tri.V1)
		assert.Equal(t, tri.N, edge1.Cross(edge2).Normalize(), "winding must match the normal")
	}
}
