package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidPLY is returned for a PLY stream whose header or body cannot be read
var ErrInvalidPLY = errors.New("invalid PLY")

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string
	Elements []PLYElement

	// Indices into the vertex properties, -1 when absent
	PositionIndices [3]int
	NormalIndices   [3]int
}

// PLYElement is one element declaration and the properties of each record
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// HasNormals reports whether every vertex carries nx, ny and nz
func (h *PLYHeader) HasNormals() bool {
	return h.NormalIndices[0] >= 0 && h.NormalIndices[1] >= 0 && h.NormalIndices[2] >= 0
}

// LoadPLY loads a PLY file into a mesh
func LoadPLY(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParsePLY reads vertex positions, optional vertex normals and polygon faces
// from an ASCII or binary PLY stream. Polygons are fan triangulated and any
// other elements are skipped.
func ParsePLY(r io.Reader) (*Mesh, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var body plyReader
	switch header.Format {
	case "ascii":
		body = &asciiReader{reader: reader}
	case "binary_little_endian":
		body = &binaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		body = &binaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	mesh := &Mesh{}
	for _, el := range header.Elements {
		for i := 0; i < el.Count; i++ {
			if err := body.startRecord(); err != nil {
				return nil, fmt.Errorf("%w: %s %d: %v", ErrInvalidPLY, el.Name, i, err)
			}
			switch el.Name {
			case "vertex":
				err = readVertex(body, header, el, mesh)
			case "face":
				err = readFace(body, el, mesh)
			default:
				err = skipRecord(body, el)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %s %d: %v", ErrInvalidPLY, el.Name, i, err)
			}
		}
	}

	for _, f := range mesh.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return nil, fmt.Errorf("%w: face index %d out of range", ErrInvalidPLY, idx)
			}
		}
	}
	return mesh, nil
}

// parsePLYHeader reads up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{
		PositionIndices: [3]int{-1, -1, -1},
		NormalIndices:   [3]int{-1, -1, -1},
	}

	first := true
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrInvalidPLY, err)
		}
		line = strings.TrimSpace(line)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("%w: missing magic number", ErrInvalidPLY)
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad format line %q", ErrInvalidPLY, line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrInvalidPLY, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			el := &header.Elements[len(header.Elements)-1]
			el.Properties = append(el.Properties, prop)
			if el.Name == "vertex" {
				header.notePropertyIndex(prop.Name, len(el.Properties)-1)
			}
		default:
			return nil, fmt.Errorf("%w: unknown header line %q", ErrInvalidPLY, line)
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("%w: missing format", ErrInvalidPLY)
	}
	for _, idx := range header.PositionIndices {
		if idx < 0 {
			return nil, fmt.Errorf("%w: vertex element needs x, y and z", ErrInvalidPLY)
		}
	}
	return header, nil
}

func (h *PLYHeader) notePropertyIndex(name string, idx int) {
	switch name {
	case "x":
		h.PositionIndices[0] = idx
	case "y":
		h.PositionIndices[1] = idx
	case "z":
		h.PositionIndices[2] = idx
	case "nx":
		h.NormalIndices[0] = idx
	case "ny":
		h.NormalIndices[1] = idx
	case "nz":
		h.NormalIndices[2] = idx
	}
}

// parsePLYProperty parses "type name" or "list countType dataType name"
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		prop := PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.Type) == 0 {
			return prop, fmt.Errorf("%w: unknown list type in %v", ErrInvalidPLY, parts)
		}
		return prop, nil
	}
	if len(parts) >= 2 {
		prop := PLYProperty{Type: parts[0], Name: parts[1]}
		if getTypeSize(prop.Type) == 0 {
			return prop, fmt.Errorf("%w: unknown type %q", ErrInvalidPLY, prop.Type)
		}
		return prop, nil
	}
	return PLYProperty{}, fmt.Errorf("%w: invalid property definition %v", ErrInvalidPLY, parts)
}

// getTypeSize returns the size in bytes of a PLY scalar type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// readVertex reads one vertex record into the mesh
func readVertex(body plyReader, header *PLYHeader, el PLYElement, mesh *Mesh) error {
	values := make([]float64, len(el.Properties))
	for i, prop := range el.Properties {
		if prop.IsList {
			if err := skipList(body, prop); err != nil {
				return err
			}
			continue
		}
		v, err := body.scalar(prop.Type)
		if err != nil {
			return err
		}
		values[i] = v
	}

	p := header.PositionIndices
	mesh.Vertices = append(mesh.Vertices, core.Point(values[p[0]], values[p[1]], values[p[2]]))
	if header.HasNormals() {
		n := header.NormalIndices
		mesh.Normals = append(mesh.Normals, core.Vector(values[n[0]], values[n[1]], values[n[2]]))
	}
	return nil
}

// readFace reads the vertex index list of one face record
func readFace(body plyReader, el PLYElement, mesh *Mesh) error {
	for _, prop := range el.Properties {
		isIndices := prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index")
		if !isIndices {
			if err := skipProperty(body, prop); err != nil {
				return err
			}
			continue
		}

		count, err := body.scalar(prop.ListType)
		if err != nil {
			return err
		}
		indices := make([]int, int(count))
		for i := range indices {
			v, err := body.scalar(prop.Type)
			if err != nil {
				return err
			}
			indices[i] = int(v)
		}
		if len(indices) >= 3 {
			mesh.Faces = append(mesh.Faces, fan(indices)...)
		}
	}
	return nil
}

func skipRecord(body plyReader, el PLYElement) error {
	for _, prop := range el.Properties {
		if err := skipProperty(body, prop); err != nil {
			return err
		}
	}
	return nil
}

func skipProperty(body plyReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(body, prop)
	}
	_, err := body.scalar(prop.Type)
	return err
}

func skipList(body plyReader, prop PLYProperty) error {
	count, err := body.scalar(prop.ListType)
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if _, err := body.scalar(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// plyReader yields the scalars of the PLY body one at a time
type plyReader interface {
	startRecord() error
	scalar(dataType string) (float64, error)
}

// asciiReader reads one whitespace separated record per line
type asciiReader struct {
	reader *bufio.Reader
	fields []string
}

func (a *asciiReader) startRecord() error {
	for {
		line, err := a.reader.ReadString('\n')
		a.fields = strings.Fields(line)
		if len(a.fields) > 0 {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *asciiReader) scalar(string) (float64, error) {
	if len(a.fields) == 0 {
		return 0, errors.New("record too short")
	}
	v, err := strconv.ParseFloat(a.fields[0], 64)
	a.fields = a.fields[1:]
	return v, err
}

// binaryReader decodes fixed-size scalars in the given byte order
type binaryReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryReader) startRecord() error { return nil }

func (b *binaryReader) scalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	data := b.buf[:size]
	if _, err := io.ReadFull(b.reader, data); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default:
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}
