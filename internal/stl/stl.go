// Package stl reads and writes STL surface meshes. ASCII and binary files
// are read; binary is written. It exists to carry the box representation,
// which transforms a reference unit cube rather than triangulating geometry.
package stl

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/slic3r-display/converter/internal/geo"
)

//go:embed data/unitcube.stl
var unitCubeSTL []byte

const (
	binaryHeaderSize = 80
	binaryFacetSize  = 50 // 12 float32 + uint16 attribute
)

// Triangle is a single facet: one normal and three vertices.
type Triangle struct {
	Normal   [3]float64
	Vertices [3][3]float64
}

// Mesh is an in-memory triangle surface mesh.
type Mesh struct {
	Triangles []Triangle
}

// UnitCube returns a fresh mesh of the embedded unit-cube asset, 12 facets
// spanning [0,1] on every axis.
func UnitCube() (*Mesh, error) {
	mesh, err := decodeASCII(unitCubeSTL)
	if err != nil {
		return nil, fmt.Errorf("embedded unit cube asset is invalid: %w", err)
	}
	return mesh, nil
}

// Load reads an STL file, detecting the ASCII and binary encodings.
func Load(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mesh %q: %w", path, err)
	}
	if isBinary(data) {
		return decodeBinary(data)
	}
	return decodeASCII(data)
}

// isBinary distinguishes the two STL encodings. ASCII files start with
// "solid", but so may a binary header, so the declared facet count is
// checked against the actual file size.
func isBinary(data []byte) bool {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return true
	}
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	return len(data) == binaryHeaderSize+4+int(count)*binaryFacetSize
}

func decodeASCII(data []byte) (*Mesh, error) {
	mesh := &Mesh{}
	var tri Triangle
	vertexCount := 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "facet":
			// "facet normal nx ny nz"
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("malformed facet line: %q", scanner.Text())
			}
			tri = Triangle{}
			vertexCount = 0
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[2+i], 64)
				if err != nil {
					return nil, fmt.Errorf("malformed facet normal: %w", err)
				}
				tri.Normal[i] = v
			}
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("malformed vertex line: %q", scanner.Text())
			}
			if vertexCount >= 3 {
				return nil, fmt.Errorf("facet with more than 3 vertices")
			}
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[1+i], 64)
				if err != nil {
					return nil, fmt.Errorf("malformed vertex: %w", err)
				}
				tri.Vertices[vertexCount][i] = v
			}
			vertexCount++
		case "endfacet":
			if vertexCount != 3 {
				return nil, fmt.Errorf("facet with %d vertices", vertexCount)
			}
			mesh.Triangles = append(mesh.Triangles, tri)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan ASCII STL: %w", err)
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("ASCII STL contains no facets")
	}
	return mesh, nil
}

func decodeBinary(data []byte) (*Mesh, error) {
	if len(data) < binaryHeaderSize+4 {
		return nil, fmt.Errorf("binary STL truncated: %d bytes", len(data))
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	want := binaryHeaderSize + 4 + int(count)*binaryFacetSize
	if len(data) < want {
		return nil, fmt.Errorf("binary STL truncated: declared %d facets", count)
	}

	mesh := &Mesh{Triangles: make([]Triangle, count)}
	offset := binaryHeaderSize + 4
	for i := range mesh.Triangles {
		values := [12]float64{}
		for j := range values {
			bits := binary.LittleEndian.Uint32(data[offset+4*j:])
			values[j] = float64(math.Float32frombits(bits))
		}
		mesh.Triangles[i].Normal = [3]float64{values[0], values[1], values[2]}
		for v := 0; v < 3; v++ {
			mesh.Triangles[i].Vertices[v] = [3]float64{
				values[3+3*v], values[4+3*v], values[5+3*v],
			}
		}
		offset += binaryFacetSize
	}
	return mesh, nil
}

// Save writes the mesh in the binary STL encoding, recomputing facet
// normals from the (possibly transformed) vertices.
func (m *Mesh) Save(path string) error {
	m.RecomputeNormals()

	buf := make([]byte, 0, binaryHeaderSize+4+len(m.Triangles)*binaryFacetSize)
	header := [binaryHeaderSize]byte{}
	copy(header[:], "slic3r-display binary STL")
	buf = append(buf, header[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Triangles)))

	for _, tri := range m.Triangles {
		for _, v := range tri.Normal {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
		}
		for _, vert := range tri.Vertices {
			for _, v := range vert {
				buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
			}
		}
		buf = binary.LittleEndian.AppendUint16(buf, 0)
	}

	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to write mesh %q: %w", path, err)
	}
	return nil
}

// Transform applies a 3x3 linear map to every vertex. The matrix rows are
// axis vectors, and vertices multiply as row vectors: v'_j = sum_k v_k * m[k][j].
func (m *Mesh) Transform(rot geo.Axes) {
	for t := range m.Triangles {
		for v := range m.Triangles[t].Vertices {
			vert := m.Triangles[t].Vertices[v]
			m.Triangles[t].Vertices[v] = [3]float64{
				vert[0]*rot[0].X + vert[1]*rot[1].X + vert[2]*rot[2].X,
				vert[0]*rot[0].Y + vert[1]*rot[1].Y + vert[2]*rot[2].Y,
				vert[0]*rot[0].Z + vert[1]*rot[1].Z + vert[2]*rot[2].Z,
			}
		}
	}
}

// Translate shifts every vertex by the given offset.
func (m *Mesh) Translate(offset geo.Position3D) {
	for t := range m.Triangles {
		for v := range m.Triangles[t].Vertices {
			m.Triangles[t].Vertices[v][0] += offset.X
			m.Triangles[t].Vertices[v][1] += offset.Y
			m.Triangles[t].Vertices[v][2] += offset.Z
		}
	}
}

// RecomputeNormals rebuilds every facet normal from its vertex winding.
// Degenerate facets keep their previous normal.
func (m *Mesh) RecomputeNormals() {
	for t := range m.Triangles {
		tri := &m.Triangles[t]
		ax := tri.Vertices[1][0] - tri.Vertices[0][0]
		ay := tri.Vertices[1][1] - tri.Vertices[0][1]
		az := tri.Vertices[1][2] - tri.Vertices[0][2]
		bx := tri.Vertices[2][0] - tri.Vertices[0][0]
		by := tri.Vertices[2][1] - tri.Vertices[0][1]
		bz := tri.Vertices[2][2] - tri.Vertices[0][2]

		nx := ay*bz - az*by
		ny := az*bx - ax*bz
		nz := ax*by - ay*bx
		norm := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if norm == 0 {
			continue
		}
		tri.Normal = [3]float64{nx / norm, ny / norm, nz / norm}
	}
}
