// Package gltfutil reads glTF and GLB scenes into normalized meshes, one
// mesh per primitive, with node transforms baked.
package gltfutil

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/rika-tools/vertexa/geom"
	"github.com/rika-tools/vertexa/mesh"
)

func Load(path string) ([]*mesh.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	return ToMeshes(doc, filepath.Dir(path))
}

// ToMeshes flattens the default scene. srcDir resolves relative texture
// URIs and may be empty.
func ToMeshes(doc *gltf.Document, srcDir string) ([]*mesh.Mesh, error) {
	var out []*mesh.Mesh
	for _, n := range sceneRoots(doc) {
		if err := flattenNode(doc, srcDir, n, geom.NewMatrix4(), &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sceneRoots(doc *gltf.Document) []uint32 {
	if len(doc.Scenes) == 0 {
		// no scene: treat every parentless node as a root
		child := map[uint32]bool{}
		for _, n := range doc.Nodes {
			for _, c := range n.Children {
				child[c] = true
			}
		}
		var roots []uint32
		for i := range doc.Nodes {
			if !child[uint32(i)] {
				roots = append(roots, uint32(i))
			}
		}
		return roots
	}
	scene := uint32(0)
	if doc.Scene != nil {
		scene = *doc.Scene
	}
	return doc.Scenes[scene].Nodes
}

func flattenNode(doc *gltf.Document, srcDir string, id uint32, parent *geom.Matrix4, dst *[]*mesh.Mesh) error {
	n := doc.Nodes[id]
	mat := parent.Mul(nodeMatrix(n))
	if n.Mesh != nil {
		gm := doc.Meshes[*n.Mesh]
		name := gm.Name
		if name == "" {
			name = n.Name
		}
		for i, p := range gm.Primitives {
			m, err := primitiveToMesh(doc, srcDir, p)
			if err != nil {
				return err
			}
			m.Name = name
			if len(gm.Primitives) > 1 {
				m.Name = fmt.Sprintf("%s.%d", name, i)
			}
			m.ApplyMatrix(mat)
			*dst = append(*dst, m)
		}
	}
	for _, c := range n.Children {
		if err := flattenNode(doc, srcDir, c, mat, dst); err != nil {
			return err
		}
	}
	return nil
}

var identity = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func nodeMatrix(n *gltf.Node) *geom.Matrix4 {
	if n.Matrix != [16]float32{} && n.Matrix != identity {
		return geom.NewMatrix4FromSlice(n.Matrix[:])
	}
	t := geom.NewTranslateMatrix4(n.Translation[0], n.Translation[1], n.Translation[2])
	r := geom.NewMatrix4()
	if n.Rotation != [4]float32{} {
		r = geom.NewRotationMatrix4FromQuaternion(n.Rotation[0], n.Rotation[1], n.Rotation[2], n.Rotation[3])
	}
	s := geom.NewMatrix4()
	if n.Scale != [3]float32{} {
		s = geom.NewScaleMatrix4(n.Scale[0], n.Scale[1], n.Scale[2])
	}
	return t.Mul(r).Mul(s)
}

func primitiveToMesh(doc *gltf.Document, srcDir string, p *gltf.Primitive) (*mesh.Mesh, error) {
	m := mesh.New("")
	if a, ok := p.Attributes["POSITION"]; ok {
		pos, err := modeler.ReadPosition(doc, doc.Accessors[a], [][3]float32{})
		if err != nil {
			return nil, err
		}
		for _, v := range pos {
			m.Vertices = append(m.Vertices, &geom.Vector3{X: v[0], Y: v[1], Z: v[2]})
		}
	}
	if a, ok := p.Attributes["NORMAL"]; ok {
		norm, err := modeler.ReadNormal(doc, doc.Accessors[a], [][3]float32{})
		if err != nil {
			return nil, err
		}
		for _, v := range norm {
			m.Normals = append(m.Normals, &geom.Vector3{X: v[0], Y: v[1], Z: v[2]})
		}
	}
	if a, ok := p.Attributes["TEXCOORD_0"]; ok {
		tc, err := modeler.ReadTextureCoord(doc, doc.Accessors[a], [][2]float32{})
		if err != nil {
			return nil, err
		}
		for _, v := range tc {
			m.UVs = append(m.UVs, geom.Vector2{X: v[0], Y: v[1]})
		}
	}
	if p.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*p.Indices], []uint32{})
		if err != nil {
			return nil, err
		}
		for i := 0; i+2 < len(indices); i += 3 {
			m.Faces = append(m.Faces, &mesh.Face{Verts: []int{int(indices[i]), int(indices[i+1]), int(indices[i+2])}})
		}
	} else {
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			m.Faces = append(m.Faces, &mesh.Face{Verts: []int{i, i + 1, i + 2}})
		}
	}
	if p.Material != nil {
		m.Hint = materialHint(doc, srcDir, doc.Materials[*p.Material])
	}
	return m, nil
}

func materialHint(doc *gltf.Document, srcDir string, mat *gltf.Material) *mesh.Hint {
	hint := &mesh.Hint{
		Name:     mat.Name,
		Emissive: mat.EmissiveFactor,
	}
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		col := pbr.BaseColorFactorOrDefault()
		hint.BaseColor = [4]float32{col[0], col[1], col[2], col[3]}
		hint.Metallic = float32(pbr.MetallicFactorOrDefault())
		hint.Roughness = float32(pbr.RoughnessFactorOrDefault())
		hint.HasColor = true
		if pbr.BaseColorTexture != nil {
			i := pbr.BaseColorTexture.Index
			if src := doc.Textures[i].Source; src != nil {
				if uri := doc.Images[*src].URI; uri != "" {
					hint.Texture = filepath.Join(srcDir, uri)
				}
			}
		}
	}
	return hint
}
