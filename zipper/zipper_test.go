package zipper

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundle(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Prusa_PLA_Red_210_60.stl":   "solid a\nendsolid a\n",
		"Sunlu_PETG_Blue_240_80.stl": "solid b\nendsolid b\n",
	}
	var names []string
	for _, name := range []string{"Prusa_PLA_Red_210_60.stl", "Sunlu_PETG_Blue_240_80.stl"} {
		filename := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(filename, []byte(files[name]), 0644))
		names = append(names, filename)
	}

	zipName := filepath.Join(dir, DefaultName)
	require.NoError(t, Bundle(zipName, names))

	zr, err := zip.OpenReader(zipName)
	require.NoError(t, err)
	defer zr.Close()

	require.Len(t, zr.File, 2)
	for i, zf := range zr.File {
		assert.Equal(t, filepath.Base(names[i]), zf.Name)
		rc, err := zf.Open()
		require.NoError(t, err)
		buf, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, files[zf.Name], string(buf))
	}
}

func TestBundleMissingFile(t *testing.T) {
	dir := t.TempDir()
	err := Bundle(filepath.Join(dir, DefaultName), []string{filepath.Join(dir, "missing.stl")})
	assert.Error(t, err)
}

func TestBundleEmpty(t *testing.T) {
	zipName := filepath.Join(t.TempDir(), DefaultName)
	require.NoError(t, Bundle(zipName, nil))

	zr, err := zip.OpenReader(zipName)
	require.NoError(t, err)
	defer zr.Close()
	assert.Empty(t, zr.File)
}
