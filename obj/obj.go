// Package obj loads Wavefront OBJ files, one mesh per group.
package obj

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/udhos/gwob"

	"github.com/rika-tools/vertexa/geom"
	"github.com/rika-tools/vertexa/mesh"
)

// Load reads an OBJ file. When the file names a material library it is
// resolved next to the file, but a missing or broken .mtl is not an error.
func Load(path string) ([]*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	meshes, mtllib, err := parse(data, name)
	if err != nil {
		return nil, err
	}
	if mtllib != "" {
		if lib, err := gwob.ReadMaterialLibFromFile(filepath.Join(filepath.Dir(path), mtllib), &gwob.ObjParserOptions{}); err == nil {
			applyMaterials(meshes, lib, filepath.Dir(path))
		}
	}
	return meshes, nil
}

func Parse(r io.Reader, name string) ([]*mesh.Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	meshes, _, err := parse(data, name)
	return meshes, err
}

func parse(data []byte, name string) ([]*mesh.Mesh, string, error) {
	o, err := gwob.NewObjFromBuf(name, data, &gwob.ObjParserOptions{})
	if err != nil {
		return nil, "", err
	}

	stride := o.StrideSize / 4
	posOff := o.StrideOffsetPosition / 4
	uvOff := o.StrideOffsetTexture / 4
	normOff := o.StrideOffsetNormal / 4

	var meshes []*mesh.Mesh
	for _, g := range o.Groups {
		if g.IndexCount == 0 {
			continue
		}
		m := mesh.New(g.Name)
		if m.Name == "" {
			m.Name = name
		}
		m.Hint = &mesh.Hint{Name: g.Usemtl}

		remap := map[int]int{}
		indices := o.Indices[g.IndexBegin : g.IndexBegin+g.IndexCount]
		for t := 0; t+2 < len(indices); t += 3 {
			f := &mesh.Face{Verts: make([]int, 3)}
			for c := 0; c < 3; c++ {
				src := indices[t+c]
				id, ok := remap[src]
				if !ok {
					id = len(m.Vertices)
					remap[src] = id
					base := src * stride
					m.Vertices = append(m.Vertices, &geom.Vector3{
						X: o.Coord[base+posOff],
						Y: o.Coord[base+posOff+1],
						Z: o.Coord[base+posOff+2],
					})
					if o.TextCoordFound {
						m.UVs = append(m.UVs, geom.Vector2{
							X: o.Coord[base+uvOff],
							Y: o.Coord[base+uvOff+1],
						})
					}
					if o.NormCoordFound {
						m.Normals = append(m.Normals, &geom.Vector3{
							X: o.Coord[base+normOff],
							Y: o.Coord[base+normOff+1],
							Z: o.Coord[base+normOff+2],
						})
					}
				}
				f.Verts[c] = id
			}
			m.Faces = append(m.Faces, f)
		}
		meshes = append(meshes, m)
	}
	if len(meshes) == 0 {
		// gwob skips lines it cannot parse, so a broken file comes back
		// as an empty object rather than an error
		return nil, "", errors.New("no usable geometry")
	}
	return meshes, o.Mtllib, nil
}

func applyMaterials(meshes []*mesh.Mesh, lib gwob.MaterialLib, dir string) {
	for _, m := range meshes {
		if m.Hint == nil || m.Hint.Name == "" {
			continue
		}
		mat, ok := lib.Lib[m.Hint.Name]
		if !ok {
			continue
		}
		m.Hint.BaseColor = [4]float32{mat.Kd[0], mat.Kd[1], mat.Kd[2], 1}
		m.Hint.HasColor = true
		if mat.MapKd != "" {
			m.Hint.Texture = filepath.Join(dir, mat.MapKd)
		}
	}
}
