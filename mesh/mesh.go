package mesh

import (
	"github.com/rika-tools/vertexa/geom"
)

// Face is a polygon face as vertex indices.
type Face struct {
	Verts []int
}

// Hint carries shading hints read from the source file. All fields are
// optional defaults for the object's material parameters.
type Hint struct {
	Name      string
	BaseColor [4]float32
	Metallic  float32
	Roughness float32
	Emissive  [3]float32
	Texture   string
	HasColor  bool
}

// Mesh is a normalized triangle/polygon mesh. Normals and UVs are per
// vertex; when present their length equals len(Vertices).
type Mesh struct {
	Name     string
	Vertices []*geom.Vector3
	Normals  []*geom.Vector3
	UVs      []geom.Vector2
	Faces    []*Face
	Hint     *Hint
}

func New(name string) *Mesh {
	return &Mesh{Name: name}
}

func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0 && len(m.UVs) == len(m.Vertices)
}

func (m *Mesh) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	for _, v := range m.Vertices {
		b.Extend(v)
	}
	return b
}

// Transform applies f to every vertex position.
func (m *Mesh) Transform(f func(v *geom.Vector3)) {
	for _, v := range m.Vertices {
		f(v)
	}
}

// ApplyMatrix bakes mat into the vertices. Normals are rotated by the
// linear part and renormalized.
func (m *Mesh) ApplyMatrix(mat *geom.Matrix4) {
	if mat == nil || mat.IsIdentity() {
		return
	}
	for _, v := range m.Vertices {
		*v = *mat.ApplyTo(v)
	}
	if len(m.Normals) == 0 {
		return
	}
	lin := mat.Clone()
	lin[12], lin[13], lin[14] = 0, 0, 0
	for _, n := range m.Normals {
		*n = *lin.ApplyTo(n).Normalize()
	}
}

// SmoothNormals computes per-vertex normals by accumulating face corner
// cross products.
func (m *Mesh) SmoothNormals() []geom.Vector3 {
	normal := make([]geom.Vector3, len(m.Vertices))
	for _, face := range m.Faces {
		nv := len(face.Verts)
		if nv < 3 {
			continue
		}
		for i, v := range face.Verts {
			v1 := m.Vertices[face.Verts[(i+nv-1)%nv]].Sub(m.Vertices[v])
			v2 := m.Vertices[face.Verts[(i+1)%nv]].Sub(m.Vertices[v])
			cross := v1.Cross(v2).Normalize()
			normal[v] = *normal[v].Add(cross)
		}
	}
	for i := range normal {
		normal[i].Normalize()
	}
	return normal
}

// EnsureNormals fills missing normals from SmoothNormals.
func (m *Mesh) EnsureNormals() {
	if len(m.Normals) == len(m.Vertices) && len(m.Vertices) > 0 {
		return
	}
	smooth := m.SmoothNormals()
	m.Normals = make([]*geom.Vector3, len(smooth))
	for i := range smooth {
		m.Normals[i] = &smooth[i]
	}
}

// Triangulate splits polygon faces into triangles in place. Attributes are
// per vertex, so face splitting needs no attribute fixup.
func (m *Mesh) Triangulate() {
	var faces []*Face
	for _, f := range m.Faces {
		if len(f.Verts) < 3 {
			continue
		}
		if len(f.Verts) == 3 {
			faces = append(faces, f)
			continue
		}
		poly := make([]*geom.Vector3, len(f.Verts))
		for i, vi := range f.Verts {
			poly[i] = m.Vertices[vi]
		}
		for _, tri := range geom.Triangulate(poly) {
			faces = append(faces, &Face{Verts: []int{f.Verts[tri[0]], f.Verts[tri[1]], f.Verts[tri[2]]}})
		}
	}
	m.Faces = faces
}
