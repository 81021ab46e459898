package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Format is the encoding of an STL file.
type Format int

const (
	Binary Format = iota
	ASCII
)

func (f Format) String() string {
	if f == ASCII {
		return "ascii"
	}
	return "binary"
}

// Summary describes a rendered model.
type Summary struct {
	Name      string // solid name, ASCII only
	Format    Format
	Triangles int
	Min, Max  mgl32.Vec3 // bounding box
	Bytes     int
}

// Size returns the extent of the bounding box.
func (s *Summary) Size() mgl32.Vec3 {
	return s.Max.Sub(s.Min)
}

func (s *Summary) String() string {
	size := s.Size()
	return fmt.Sprintf("%v triangles (%v), %.2f x %.2f x %.2f mm", s.Triangles, s.Format, size[0], size[1], size[2])
}

func (s *Summary) extend(v mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if v[i] < s.Min[i] {
			s.Min[i] = v[i]
		}
		if v[i] > s.Max[i] {
			s.Max[i] = v[i]
		}
	}
}

// ReadSummary summarizes the STL file at filename.
func ReadSummary(filename string) (*Summary, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Summarize(buf)
}

// Summarize summarizes an ASCII or binary STL model.
func Summarize(buf []byte) (*Summary, error) {
	if isBinary(buf) {
		return summarizeBinary(buf)
	}
	if bytes.HasPrefix(bytes.TrimLeft(buf, " \t\r\n"), []byte("solid")) {
		return summarizeASCII(buf)
	}
	return nil, errors.New("not an STL file")
}

func isBinary(buf []byte) bool {
	if len(buf) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(buf[headerSize:])
	return len(buf) == headerSize+4+int(count)*triSize
}

func summarizeBinary(buf []byte) (*Summary, error) {
	s := &Summary{Format: Binary, Bytes: len(buf)}
	r := bytes.NewReader(buf[headerSize+4:])
	count := int(binary.LittleEndian.Uint32(buf[headerSize:]))
	first := true
	for i := 0; i < count; i++ {
		var t Tri
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			return nil, fmt.Errorf("triangle %v: %v", i, err)
		}
		for _, v := range []mgl32.Vec3{t.V1, t.V2, t.V3} {
			if first {
				s.Min, s.Max = v, v
				first = false
				continue
			}
			s.extend(v)
		}
		s.Triangles++
	}
	return s, nil
}

func summarizeASCII(buf []byte) (*Summary, error) {
	s := &Summary{Format: ASCII, Bytes: len(buf)}
	sc := bufio.NewScanner(bytes.NewReader(buf))
	first := true
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			if s.Name == "" {
				s.Name = strings.Join(fields[1:], " ")
			}
		case "facet":
			s.Triangles++
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %v: malformed vertex", lineNum)
			}
			var v mgl32.Vec3
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %v: %v", lineNum, err)
				}
				v[i] = float32(f)
			}
			if first {
				s.Min, s.Max = v, v
				first = false
				continue
			}
			s.extend(v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
