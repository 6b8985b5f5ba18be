// Package stl loads STL files (ascii and binary) as a single mesh.
package stl

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	hstl "github.com/hschendel/stl"

	"github.com/rika-tools/vertexa/geom"
	"github.com/rika-tools/vertexa/mesh"
)

func Load(path string) ([]*mesh.Mesh, error) {
	solid, err := hstl.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := solid.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return []*mesh.Mesh{toMesh(solid, name)}, nil
}

func Parse(r io.Reader, name string) ([]*mesh.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	solid, err := hstl.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if solid.Name != "" {
		name = solid.Name
	}
	return []*mesh.Mesh{toMesh(solid, name)}, nil
}

// toMesh expands each triangle to three unique vertices so the facet
// normal can be carried per vertex.
func toMesh(solid *hstl.Solid, name string) *mesh.Mesh {
	m := mesh.New(name)
	for i := range solid.Triangles {
		t := &solid.Triangles[i]
		face := &mesh.Face{Verts: make([]int, 3)}
		for c := 0; c < 3; c++ {
			face.Verts[c] = len(m.Vertices)
			m.Vertices = append(m.Vertices, &geom.Vector3{
				X: t.Vertices[c][0],
				Y: t.Vertices[c][1],
				Z: t.Vertices[c][2],
			})
		}
		n := geom.Vector3{X: t.Normal[0], Y: t.Normal[1], Z: t.Normal[2]}
		if n.LenSqr() == 0 {
			// zeroed facet normals are common, recover from the winding
			a := m.Vertices[face.Verts[0]]
			b := m.Vertices[face.Verts[1]]
			c := m.Vertices[face.Verts[2]]
			n = *b.Sub(a).Cross(c.Sub(a)).Normalize()
		}
		for c := 0; c < 3; c++ {
			nc := n
			m.Normals = append(m.Normals, &nc)
		}
		m.Faces = append(m.Faces, face)
	}
	return m
}
