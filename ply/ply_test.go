package ply

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"
)

const asciiPly = `ply
format ascii 1.0
comment made by hand
element vertex 3
property float x
property float y
property float z
property float nx
property float ny
property float nz
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0 1
1 0 0 0 0 1
0 1 0 0 0 1
3 0 1 2
`

func TestParseAscii(t *testing.T) {
	meshes, err := Parse(strings.NewReader(asciiPly), "tri")
	if err != nil {
		t.Fatal(err)
	}
	m := meshes[0]
	if m.Name != "tri" {
		t.Error("name:", m.Name)
	}
	if len(m.Vertices) != 3 || len(m.Faces) != 1 {
		t.Fatal("verts:", len(m.Vertices), "faces:", len(m.Faces))
	}
	if m.Vertices[1].X != 1 {
		t.Error("vertex:", m.Vertices[1])
	}
	if len(m.Normals) != 3 || m.Normals[0].Z != 1 {
		t.Error("normals:", m.Normals)
	}
	if f := m.Faces[0]; f.Verts[0] != 0 || f.Verts[2] != 2 {
		t.Error("face:", f.Verts)
	}
}

func TestParseBinary(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("element vertex 3\n")
	buf.WriteString("property float x\nproperty float y\nproperty float z\n")
	buf.WriteString("element face 1\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")
	verts := [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}}
	for _, v := range verts {
		for _, c := range v {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(c))
			buf.Write(b[:])
		}
	}
	buf.WriteByte(3)
	for _, i := range []int32{0, 1, 2} {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(i))
		buf.Write(b[:])
	}

	meshes, err := Parse(&buf, "bin")
	if err != nil {
		t.Fatal(err)
	}
	m := meshes[0]
	if len(m.Vertices) != 3 || len(m.Faces) != 1 {
		t.Fatal("verts:", len(m.Vertices), "faces:", len(m.Faces))
	}
	if m.Vertices[1].X != 2 {
		t.Error("vertex:", m.Vertices[1])
	}
	if m.Normals != nil {
		t.Error("unexpected normals")
	}
}

func TestParseBadMagic(t *testing.T) {
	if _, err := Parse(strings.NewReader("plx\n"), "x"); err == nil {
		t.Error("expected error")
	}
}

func TestParseShortRow(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 1
property float x
property float y
property float z
end_header
1 2
`
	if _, err := Parse(strings.NewReader(src), "x"); err == nil {
		t.Error("expected error for short row")
	}
}
