package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// plyProperty describes one scalar field of the "vertex" element in
// binary_little_endian PLY, in file order.
type plyProperty struct {
	name string
	kind string // ply scalar type keyword: float, double, uchar, int, ...
}

// PLYSource is a VertexSource backed by a binary_little_endian PLY file
// with a single "vertex" element. Only scalar float-family properties
// are supported, since that covers every property a Gaussian splat
// scene needs.
type PLYSource struct {
	count      int
	properties []plyProperty
	rowStride  int
	offsets    map[string]int
	data       []byte
}

// OpenPLY reads header and body of a binary_little_endian PLY file.
func OpenPLY(path string) (*PLYSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	src, err := parsePLYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("loader: parse header of %s: %w", path, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read body of %s: %w", path, err)
	}
	if len(body) < src.count*src.rowStride {
		return nil, fmt.Errorf("loader: %s: truncated vertex data: have %d bytes, need %d", path, len(body), src.count*src.rowStride)
	}
	src.data = body
	return src, nil
}

func parsePLYHeader(r *bufio.Reader) (*PLYSource, error) {
	line, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "ply" {
		return nil, fmt.Errorf("not a PLY file")
	}

	src := &PLYSource{offsets: make(map[string]int)}
	inVertex := false
	sawFormat := false

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF in header")
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "comment":
			continue
		case "format":
			if len(fields) < 2 || fields[1] != "binary_little_endian" {
				return nil, fmt.Errorf("unsupported format %q, only binary_little_endian is supported", line)
			}
			sawFormat = true
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed element line %q", line)
			}
			inVertex = fields[1] == "vertex"
			if inVertex {
				n, err := strconv.Atoi(fields[2])
				if err != nil {
					return nil, fmt.Errorf("malformed vertex count %q", fields[2])
				}
				src.count = n
			}
		case "property":
			if !inVertex || len(fields) < 3 {
				continue
			}
			src.offsets[fields[2]] = src.rowStride
			size, err := plyScalarSize(fields[1])
			if err != nil {
				return nil, err
			}
			src.properties = append(src.properties, plyProperty{name: fields[2], kind: fields[1]})
			src.rowStride += size
		case "end_header":
			if !sawFormat {
				return nil, fmt.Errorf("missing format line")
			}
			return src, nil
		}
	}
}

func plyScalarSize(kind string) (int, error) {
	switch kind {
	case "char", "uchar", "int8", "uint8":
		return 1, nil
	case "short", "ushort", "int16", "uint16":
		return 2, nil
	case "int", "uint", "int32", "uint32", "float", "float32":
		return 4, nil
	case "double", "float64", "int64", "uint64":
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported PLY scalar type %q", kind)
	}
}

// Count implements loader.VertexSource.
func (s *PLYSource) Count() int { return s.count }

// PropertyF32 implements loader.VertexSource.
func (s *PLYSource) PropertyF32(name string) ([]float32, error) {
	var kind string
	offset, ok := s.offsets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingProperty, name)
	}
	for _, p := range s.properties {
		if p.name == name {
			kind = p.kind
			break
		}
	}

	out := make([]float32, s.count)
	for i := 0; i < s.count; i++ {
		row := s.data[i*s.rowStride:]
		switch kind {
		case "float", "float32":
			bits := binary.LittleEndian.Uint32(row[offset:])
			out[i] = math.Float32frombits(bits)
		case "double", "float64":
			bits := binary.LittleEndian.Uint64(row[offset:])
			out[i] = float32(math.Float64frombits(bits))
		default:
			return nil, fmt.Errorf("loader: property %s has unsupported type %s for PropertyF32", name, kind)
		}
	}
	return out, nil
}
