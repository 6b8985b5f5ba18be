package fbx

import (
	"strings"
	"testing"
)

const asciiDoc = `; test scene
Creator: "test"
Objects: {
	Geometry: 100, "Geometry::quad", "Mesh" {
		Vertices: *12 { a: 0,0,0,1,0,0,1,1,0,0,1,0 }
		PolygonVertexIndex: *4 { a: 0,1,2,-4 }
		LayerElementUV: 0 {
			MappingInformationType: "ByPolygonVertex"
			ReferenceInformationType: "IndexToDirect"
			UV: *8 { a: 0.0,0.0,1.0,0.0,1.0,1.0,0.0,1.0 }
			UVIndex: *4 { a: 0,1,2,3 }
		}
	}
	Model: 200, "Model::quad", "Mesh" {
		Properties70: {
			P: "Lcl Translation", "Lcl Translation", "", "A",10.0,0.0,0.0
		}
	}
}
Connections: {
	C: "OO",200,0
	C: "OO",100,200
}
`

func TestParseAscii(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(asciiDoc))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Creator != "test" {
		t.Error("creator:", doc.Creator)
	}
	obj := doc.Objects[100]
	if obj == nil {
		t.Fatal("geometry object not found")
	}
	if obj.Name() != "Geometry::quad" {
		t.Error("name:", obj.Name())
	}
	if len(doc.Scene.FindRefs("Model")) != 1 {
		t.Fatal("scene should have one model")
	}
}

func TestMeshes(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(asciiDoc))
	if err != nil {
		t.Fatal(err)
	}
	meshes := doc.Meshes()
	if len(meshes) != 1 {
		t.Fatal("mesh count:", len(meshes))
	}
	m := meshes[0]
	if m.Name != "Model::quad" {
		t.Error("name:", m.Name)
	}
	if len(m.Vertices) != 4 || len(m.Faces) != 1 {
		t.Fatal("verts:", len(m.Vertices), "faces:", len(m.Faces))
	}
	// Lcl Translation baked in.
	if m.Vertices[0].X != 10 || m.Vertices[1].X != 11 {
		t.Error("translation not applied:", m.Vertices[0], m.Vertices[1])
	}
	if !m.HasUVs() {
		t.Fatal("uvs missing")
	}
	// V is flipped.
	if m.UVs[0].Y != 1 || m.UVs[2].Y != 0 {
		t.Error("uv:", m.UVs[0], m.UVs[2])
	}
}

func TestDecodePolygons(t *testing.T) {
	faces := decodePolygons([]int32{0, 1, -3, 2, 3, 4, -6})
	if len(faces) != 2 {
		t.Fatal("face count:", len(faces))
	}
	if faces[0][2] != 2 {
		t.Error("first face:", faces[0])
	}
	if faces[1][3] != 5 {
		t.Error("second face:", faces[1])
	}
}

func TestPropertyTemplate(t *testing.T) {
	src := `
Definitions: {
	ObjectType: "Material" {
		PropertyTemplate: "FbxSurfacePhong" {
			Properties70: {
				P: "Opacity", "double", "Number", "",0.25
			}
		}
	}
}
Objects: {
	Material: 300, "Material::m", "" {
	}
}
`
	doc, err := ParseDocument(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	m := doc.Objects[300]
	if m == nil {
		t.Fatal("material not found")
	}
	if v := m.PropFloat("Opacity", 1); v != 0.25 {
		t.Error("template property not inherited:", v)
	}
}
