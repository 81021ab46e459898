// Package stl writes and summarizes STL swatch models.
package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	headerSize = 80
	triSize    = 50
	bufSize    = 10000
)

// Client is a streaming binary STL file writer client.
type Client struct {
	wg sync.WaitGroup // ensures file is closed
	ch chan Tri

	mu  sync.RWMutex
	err error
}

// Tri represents an STL triangle.
type Tri struct {
	// Normal plus three vertices.
	N, V1, V2, V3 mgl32.Vec3
	_             uint16 // unused attribute byte count
}

// New creates a new streaming binary STL file writer.
func New(filename string) (*Client, error) {
	out, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return NewWriter(out)
}

// NewWriter starts a streaming binary STL writer on out, which is
// closed by Close.
func NewWriter(out WriteSeekCloser) (*Client, error) {
	// Write header
	header := struct {
		_ [headerSize]uint8
		_ uint32 // count will be overwritten on channel close.
	}{}
	if err := binary.Write(out, binary.LittleEndian, &header); err != nil {
		out.Close()
		return nil, fmt.Errorf("error writing header: %v", err)
	}

	c := &Client{
		ch: make(chan Tri, bufSize),
	}
	c.start(out)
	return c, nil
}

func (c *Client) start(out WriteSeekCloser) {
	c.wg.Add(1)
	go func() {
		err := writer(out, c.ch)
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		c.wg.Done()
	}()
}

// Write writes a triangle to the STL file.
func (c *Client) Write(t *Tri) error {
	c.ch <- *t
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Close finalizes the STL file.
func (c *Client) Close() error {
	close(c.ch)
	c.wg.Wait()
	return c.err
}

// WriteSeekCloser is the destination of a binary STL stream. The
// triangle count is patched into the header once all triangles are
// written.
type WriteSeekCloser interface {
	io.Writer
	io.Seeker
	io.Closer
}

func writer(out WriteSeekCloser, ch <-chan Tri) error {
	var count uint32
	var werr error
	for t := range ch {
		if werr != nil {
			continue // drain
		}
		if err := binary.Write(out, binary.LittleEndian, &t); err != nil {
			werr = fmt.Errorf("write triangle %#v: %v", t, err)
			continue
		}
		count++
	}
	if werr != nil {
		out.Close()
		return werr
	}

	if _, err := out.Seek(headerSize, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %v", err)
	}

	if err := binary.Write(out, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("write count %v: %v", count, err)
	}

	return out.Close()
}
