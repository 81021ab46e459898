// Package zipper bundles rendered swatch models into a ZIP file.
package zipper

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultName is the bundle written beside the rendered models.
const DefaultName = "swatches.zip"

// Bundle writes the named files into a new ZIP file at zipName. Each
// entry is stored under its base name, in the order given.
func Bundle(zipName string, filenames []string) error {
	zf, err := os.Create(zipName)
	if err != nil {
		return fmt.Errorf("Create: %v", err)
	}
	w := zip.NewWriter(zf)

	for _, filename := range filenames {
		if err := add(w, filename); err != nil {
			w.Close()
			zf.Close()
			return err
		}
	}

	if err := w.Close(); err != nil {
		zf.Close()
		return fmt.Errorf("Unable to close ZIP writer: %v", err)
	}

	if err := zf.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP file: %v", err)
	}
	return nil
}

func add(w *zip.Writer, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("Open: %v", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("Stat: %v", err)
	}
	fh, err := zip.FileInfoHeader(fi)
	if err != nil {
		return fmt.Errorf("FileInfoHeader: %v", err)
	}
	fh.Name = filepath.Base(filename)
	fh.Method = zip.Deflate

	dst, err := w.CreateHeader(fh)
	if err != nil {
		return fmt.Errorf("Unable to create ZIP file %q: %v", fh.Name, err)
	}
	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("Copy %q: %v", filename, err)
	}
	return nil
}
