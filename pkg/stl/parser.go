// Package stl reads ASCII and binary STL files into flat vertex streams.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/philipparndt/flyview/pkg/linalg"
)

// Parse reads an STL file and returns its mesh.
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	mesh, err := Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filename)
	}
	return mesh, nil
}

const (
	binaryHeaderSize = 84
	binaryFacetSize  = 50
)

// Decode reads an STL stream. Input starting with "solid" is read as ASCII
// unless its size matches the binary layout its header announces or it
// holds no facets, since many exporters start binary headers with "solid"
// as well. Anything else is read as binary.
func Decode(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	if len(data) == 0 {
		return nil, errors.New("failed to read file header: empty input")
	}

	if !bytes.HasPrefix(data, []byte("solid")) || isBinarySize(data) {
		return parseBinary(data)
	}

	mesh, err := parseASCII(bytes.NewReader(data))
	if err == nil && mesh.TriangleCount() == 0 && len(data) >= binaryHeaderSize {
		return parseBinary(data)
	}
	return mesh, err
}

// isBinarySize reports whether data is exactly as long as the binary
// layout announced by its triangle count
func isBinarySize(data []byte) bool {
	if len(data) < binaryHeaderSize {
		return false
	}
	count := uint64(binary.LittleEndian.Uint32(data[80:binaryHeaderSize]))
	return uint64(len(data)) == binaryHeaderSize+binaryFacetSize*count
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)
	mesh := &Mesh{}

	var normal linalg.Vector3
	var vertices []linalg.Vector3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVec3(fields[2:5])
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", line)
				}
				normal = v
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, errors.Errorf("line %d: vertex needs three coordinates", line)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, errors.Errorf("line %d: facet has %d vertices", line, len(vertices))
			}
			mesh.addFacet(normal, vertices[0], vertices[1], vertices[2])
			normal = linalg.Vector3{}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading ASCII STL")
	}

	return mesh, nil
}

func parseVec3(fields []string) (linalg.Vector3, error) {
	var c [3]linalg.Scalar
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return linalg.Vector3{}, errors.Wrapf(err, "coordinate %d", i)
		}
		c[i] = linalg.Scalar(x)
	}
	return linalg.Vec(c), nil
}

// facet is the on-disk layout of one binary STL triangle
type facet struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

// parseBinary parses a binary STL file
func parseBinary(data []byte) (*Mesh, error) {
	mesh := &Mesh{}
	reader := bytes.NewReader(data)

	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	// Extract name from header (if present)
	mesh.Name = string(bytes.TrimRight(header, "\x00 "))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, errors.Wrap(err, "failed to read triangle count")
	}

	// the count comes from the file, only preallocate what the data can hold
	n := min(int(triangleCount), reader.Len()/binaryFacetSize)
	mesh.Positions = make([]linalg.Scalar, 0, n*9)
	mesh.Normals = make([]linalg.Scalar, 0, n*9)

	for i := uint32(0); i < triangleCount; i++ {
		var f facet
		if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
			return nil, errors.Wrapf(err, "failed to read triangle %d", i)
		}
		mesh.addFacet(
			linalg.Vec(f.Normal),
			linalg.Vec(f.Vertices[0]),
			linalg.Vec(f.Vertices[1]),
			linalg.Vec(f.Vertices[2]),
		)
	}

	return mesh, nil
}
