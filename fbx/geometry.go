package fbx

import (
	"github.com/rika-tools/vertexa/geom"
	"github.com/rika-tools/vertexa/mesh"
)

type layerElement struct {
	mapping   string // ByPolygonVertex, ByControlPoint/ByVertice, AllSame
	reference string // Direct, IndexToDirect
	index     []int32
}

func readLayer(node *Node, arrayName, indexName string) (*layerElement, *Node) {
	if node == nil {
		return nil, nil
	}
	le := &layerElement{
		mapping:   node.FindChild("MappingInformationType").AttrString(0),
		reference: node.FindChild("ReferenceInformationType").AttrString(0),
	}
	if idx := node.FindChild(indexName); idx != nil {
		le.index = idx.Attr(0).ToInt32Slice()
	}
	return le, node.FindChild(arrayName)
}

func (le *layerElement) perControlPoint() bool {
	return le.mapping == "ByControlPoint" || le.mapping == "ByVertice"
}

// resolve maps a polygon-vertex counter and control point index to the
// element array index.
func (le *layerElement) resolve(polyVert, controlPoint int) int {
	i := polyVert
	if le.perControlPoint() {
		i = controlPoint
	}
	if le.reference == "IndexToDirect" && len(le.index) > 0 {
		if i >= len(le.index) {
			return -1
		}
		return int(le.index[i])
	}
	return i
}

// decodePolygons expands PolygonVertexIndex, where a negative value marks
// the last corner of a face as ^index.
func decodePolygons(raw []int32) [][]int {
	var faces [][]int
	var face []int
	for _, index := range raw {
		if index < 0 {
			face = append(face, int(^index))
			faces = append(faces, face)
			face = nil
			continue
		}
		face = append(face, int(index))
	}
	return faces
}

// geometryToMesh converts one Geometry object to a normalized mesh. When a
// layer is mapped per polygon vertex the control points are expanded so all
// attributes become per vertex.
func geometryToMesh(g *Object, name string) *mesh.Mesh {
	m := mesh.New(name)
	verts := g.FindChild("Vertices").Attr(0).ToVec3Slice()
	faces := decodePolygons(g.FindChild("PolygonVertexIndex").Attr(0).ToInt32Slice())

	normalLayer, normalNode := readLayer(g.FindChild("LayerElementNormal"), "Normals", "NormalsIndex")
	uvLayer, uvNode := readLayer(g.FindChild("LayerElementUV"), "UV", "UVIndex")

	var normals []*geom.Vector3
	if normalNode != nil {
		normals = normalNode.Attr(0).ToVec3Slice()
	}
	var uvs []geom.Vector2
	if uvNode != nil {
		uvs = uvNode.Attr(0).ToVec2Slice()
	}

	expand := (normalLayer != nil && len(normals) > 0 && !normalLayer.perControlPoint()) ||
		(uvLayer != nil && len(uvs) > 0 && !uvLayer.perControlPoint())

	if !expand {
		for _, v := range verts {
			c := *v
			m.Vertices = append(m.Vertices, &c)
		}
		for i := range m.Vertices {
			if len(normals) > 0 {
				if j := normalLayer.resolve(i, i); j >= 0 && j < len(normals) {
					c := *normals[j]
					m.Normals = append(m.Normals, &c)
				}
			}
			if len(uvs) > 0 {
				if j := uvLayer.resolve(i, i); j >= 0 && j < len(uvs) {
					m.UVs = append(m.UVs, geom.Vector2{X: uvs[j].X, Y: 1 - uvs[j].Y})
				}
			}
		}
		if len(m.Normals) != len(m.Vertices) {
			m.Normals = nil
		}
		if len(m.UVs) != len(m.Vertices) {
			m.UVs = nil
		}
		for _, f := range faces {
			m.Faces = append(m.Faces, &mesh.Face{Verts: f})
		}
		return m
	}

	polyVert := 0
	for _, f := range faces {
		nf := &mesh.Face{}
		for _, cp := range f {
			if cp >= len(verts) {
				polyVert++
				continue
			}
			id := len(m.Vertices)
			c := *verts[cp]
			m.Vertices = append(m.Vertices, &c)
			if len(normals) > 0 {
				n := &geom.Vector3{}
				if j := normalLayer.resolve(polyVert, cp); j >= 0 && j < len(normals) {
					*n = *normals[j]
				}
				m.Normals = append(m.Normals, n)
			}
			if len(uvs) > 0 {
				var uv geom.Vector2
				if j := uvLayer.resolve(polyVert, cp); j >= 0 && j < len(uvs) {
					uv = geom.Vector2{X: uvs[j].X, Y: 1 - uvs[j].Y}
				}
				m.UVs = append(m.UVs, uv)
			}
			nf.Verts = append(nf.Verts, id)
			polyVert++
		}
		if len(nf.Verts) >= 3 {
			m.Faces = append(m.Faces, nf)
		}
	}
	if len(m.Normals) == 0 {
		m.Normals = nil
	}
	if len(m.UVs) == 0 {
		m.UVs = nil
	}
	return m
}
