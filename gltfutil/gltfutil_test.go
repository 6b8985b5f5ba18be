package gltfutil

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func triangleDoc() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{"POSITION": pos, "TEXCOORD_0": uv},
			Indices:    gltf.Index(idx),
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:        "root",
		Mesh:        gltf.Index(0),
		Translation: [3]float32{5, 0, 0},
		Rotation:    [4]float32{0, 0, 0, 1},
		Scale:       [3]float32{1, 1, 1},
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	return doc
}

func TestToMeshes(t *testing.T) {
	meshes, err := ToMeshes(triangleDoc(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 1 {
		t.Fatal("mesh count:", len(meshes))
	}
	m := meshes[0]
	if m.Name != "tri" {
		t.Error("name:", m.Name)
	}
	if len(m.Vertices) != 3 || len(m.Faces) != 1 {
		t.Fatal("verts:", len(m.Vertices), "faces:", len(m.Faces))
	}
	// node translation baked
	if m.Vertices[0].X != 5 || m.Vertices[1].X != 6 {
		t.Error("transform:", m.Vertices[0], m.Vertices[1])
	}
	if !m.HasUVs() {
		t.Error("uvs missing")
	}
}

func TestToMeshesScaledNode(t *testing.T) {
	doc := triangleDoc()
	doc.Nodes[0].Translation = [3]float32{}
	doc.Nodes[0].Scale = [3]float32{2, 2, 2}
	meshes, err := ToMeshes(doc, "")
	if err != nil {
		t.Fatal(err)
	}
	if v := meshes[0].Vertices[1]; v.X != 2 {
		t.Error("scale not applied:", v)
	}
}

func TestMaterialHint(t *testing.T) {
	doc := triangleDoc()
	rough := float32(0.25)
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 0, 0, 1},
			RoughnessFactor: &rough,
		},
	})
	doc.Meshes[0].Primitives[0].Material = gltf.Index(0)
	meshes, err := ToMeshes(doc, "")
	if err != nil {
		t.Fatal(err)
	}
	h := meshes[0].Hint
	if h == nil {
		t.Fatal("hint missing")
	}
	if h.Name != "red" || h.BaseColor[0] != 1 || h.Roughness != 0.25 {
		t.Error("hint:", h)
	}
}
