package mesh

import (
	"github.com/rika-tools/vertexa/geom"
)

// EnsureUVs returns a mesh that carries per-vertex texture coordinates.
// A mesh that already has UVs is returned unchanged. Otherwise a shallow
// copy is returned whose UVs are a planar projection onto the dominant
// bounding-box plane: the two largest-extent axes are mapped linearly into
// [0,1]x[0,1] over the bounding box. If the chosen axes both have zero
// extent, every vertex maps to (0,0).
//
// The projection depends only on the mesh geometry, so repeated calls
// produce identical coordinates. The input mesh is never mutated.
func EnsureUVs(m *Mesh) *Mesh {
	if m.HasUVs() || len(m.Vertices) == 0 {
		return m
	}

	b := m.Bounds()
	ext := b.Extent()
	ua, va := dominantPlane(&ext)

	du := axis(&ext, ua)
	dv := axis(&ext, va)

	out := *m
	out.UVs = make([]geom.Vector2, len(m.Vertices))
	for i, p := range m.Vertices {
		var u, v geom.Element
		if du > 0 {
			u = (axis(p, ua) - axis(&b.Min, ua)) / du
		}
		if dv > 0 {
			v = (axis(p, va) - axis(&b.Min, va)) / dv
		}
		out.UVs[i] = geom.Vector2{X: u, Y: v}
	}
	return &out
}

// dominantPlane returns the two largest-extent axes (0=x 1=y 2=z), ties
// resolved toward the lower axis index so the choice is deterministic.
func dominantPlane(ext *geom.Vector3) (int, int) {
	order := [3]int{0, 1, 2}
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if axis(ext, order[j]) > axis(ext, order[i]) {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	u, v := order[0], order[1]
	if u > v {
		u, v = v, u
	}
	return u, v
}

func axis(v *geom.Vector3, i int) geom.Element {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}
