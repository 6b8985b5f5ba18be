// Package ply reads PLY files, ascii and binary, as a single mesh.
package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rika-tools/vertexa/geom"
	"github.com/rika-tools/vertexa/mesh"
)

type propType int

const (
	typeInvalid propType = iota
	typeInt8
	typeUint8
	typeInt16
	typeUint16
	typeInt32
	typeUint32
	typeFloat32
	typeFloat64
)

var typeNames = map[string]propType{
	"char": typeInt8, "int8": typeInt8,
	"uchar": typeUint8, "uint8": typeUint8,
	"short": typeInt16, "int16": typeInt16,
	"ushort": typeUint16, "uint16": typeUint16,
	"int": typeInt32, "int32": typeInt32,
	"uint": typeUint32, "uint32": typeUint32,
	"float": typeFloat32, "float32": typeFloat32,
	"double": typeFloat64, "float64": typeFloat64,
}

type property struct {
	name      string
	typ       propType
	list      bool
	countType propType
}

type element struct {
	name  string
	count int
	props []property
}

type header struct {
	ascii    bool
	order    binary.ByteOrder
	elements []*element
}

func Load(path string) ([]*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, name)
}

func Parse(r io.Reader, name string) ([]*mesh.Mesh, error) {
	br := bufio.NewReader(r)
	h, err := parseHeader(br)
	if err != nil {
		return nil, err
	}
	m := mesh.New(name)
	for _, el := range h.elements {
		if err := readElement(br, h, el, m); err != nil {
			return nil, fmt.Errorf("ply: element %s: %w", el.name, err)
		}
	}
	if len(m.Normals) != len(m.Vertices) {
		m.Normals = nil
	}
	if len(m.UVs) != len(m.Vertices) {
		m.UVs = nil
	}
	return []*mesh.Mesh{m}, nil
}

func parseHeader(br *bufio.Reader) (*header, error) {
	magic, err := readLine(br)
	if err != nil {
		return nil, err
	}
	if magic != "ply" {
		return nil, fmt.Errorf("ply: bad magic %q", magic)
	}
	h := &header{order: binary.LittleEndian}
	var cur *element
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "comment", "obj_info":
		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("ply: bad format line %q", line)
			}
			switch fields[1] {
			case "ascii":
				h.ascii = true
			case "binary_little_endian":
				h.order = binary.LittleEndian
			case "binary_big_endian":
				h.order = binary.BigEndian
			default:
				return nil, fmt.Errorf("ply: unknown format %q", fields[1])
			}
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("ply: bad element line %q", line)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("ply: bad element count %q", fields[2])
			}
			cur = &element{name: fields[1], count: n}
			h.elements = append(h.elements, cur)
		case "property":
			if cur == nil || len(fields) < 3 {
				return nil, fmt.Errorf("ply: stray property %q", line)
			}
			if fields[1] == "list" {
				if len(fields) < 5 {
					return nil, fmt.Errorf("ply: bad list property %q", line)
				}
				ct, t := typeNames[fields[2]], typeNames[fields[3]]
				if ct == typeInvalid || t == typeInvalid {
					return nil, fmt.Errorf("ply: unknown type in %q", line)
				}
				cur.props = append(cur.props, property{name: fields[4], typ: t, list: true, countType: ct})
			} else {
				t := typeNames[fields[1]]
				if t == typeInvalid {
					return nil, fmt.Errorf("ply: unknown type %q", fields[1])
				}
				cur.props = append(cur.props, property{name: fields[2], typ: t})
			}
		case "end_header":
			return h, nil
		default:
			return nil, fmt.Errorf("ply: unknown header line %q", line)
		}
	}
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readElement consumes one element block and folds vertex and face data
// into m. Unknown elements are read and dropped.
func readElement(br *bufio.Reader, h *header, el *element, m *mesh.Mesh) error {
	isVertex := el.name == "vertex"
	isFace := el.name == "face"
	for i := 0; i < el.count; i++ {
		var fields []string
		if h.ascii {
			line, err := readLine(br)
			if err != nil {
				return err
			}
			fields = strings.Fields(line)
		}
		fi := 0
		var vert, norm geom.Vector3
		var uv geom.Vector2
		var hasNorm, hasUV bool
		for _, p := range el.props {
			if p.list {
				n, err := readScalar(br, h, fields, &fi, p.countType)
				if err != nil {
					return err
				}
				indices := make([]int, int(n))
				for k := range indices {
					v, err := readScalar(br, h, fields, &fi, p.typ)
					if err != nil {
						return err
					}
					indices[k] = int(v)
				}
				if isFace && (p.name == "vertex_indices" || p.name == "vertex_index") && len(indices) >= 3 {
					m.Faces = append(m.Faces, &mesh.Face{Verts: indices})
				}
				continue
			}
			v, err := readScalar(br, h, fields, &fi, p.typ)
			if err != nil {
				return err
			}
			if !isVertex {
				continue
			}
			switch p.name {
			case "x":
				vert.X = float32(v)
			case "y":
				vert.Y = float32(v)
			case "z":
				vert.Z = float32(v)
			case "nx":
				norm.X, hasNorm = float32(v), true
			case "ny":
				norm.Y = float32(v)
			case "nz":
				norm.Z = float32(v)
			case "s", "u":
				uv.X, hasUV = float32(v), true
			case "t", "v":
				uv.Y = float32(v)
			}
		}
		if isVertex {
			vc := vert
			m.Vertices = append(m.Vertices, &vc)
			if hasNorm {
				nc := norm
				m.Normals = append(m.Normals, &nc)
			}
			if hasUV {
				m.UVs = append(m.UVs, uv)
			}
		}
	}
	return nil
}

func readScalar(br *bufio.Reader, h *header, fields []string, fi *int, t propType) (float64, error) {
	if h.ascii {
		if *fi >= len(fields) {
			return 0, fmt.Errorf("short row")
		}
		v, err := strconv.ParseFloat(fields[*fi], 64)
		*fi++
		return v, err
	}
	var buf [8]byte
	size := map[propType]int{
		typeInt8: 1, typeUint8: 1,
		typeInt16: 2, typeUint16: 2,
		typeInt32: 4, typeUint32: 4, typeFloat32: 4,
		typeFloat64: 8,
	}[t]
	if _, err := io.ReadFull(br, buf[:size]); err != nil {
		return 0, err
	}
	switch t {
	case typeInt8:
		return float64(int8(buf[0])), nil
	case typeUint8:
		return float64(buf[0]), nil
	case typeInt16:
		return float64(int16(h.order.Uint16(buf[:2]))), nil
	case typeUint16:
		return float64(h.order.Uint16(buf[:2])), nil
	case typeInt32:
		return float64(int32(h.order.Uint32(buf[:4]))), nil
	case typeUint32:
		return float64(h.order.Uint32(buf[:4])), nil
	case typeFloat32:
		return float64(math.Float32frombits(h.order.Uint32(buf[:4]))), nil
	case typeFloat64:
		return math.Float64frombits(h.order.Uint64(buf[:8])), nil
	}
	return 0, fmt.Errorf("bad type")
}
