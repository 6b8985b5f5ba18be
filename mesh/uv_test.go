package mesh

import (
	"testing"

	"github.com/rika-tools/vertexa/geom"
)

func TestEnsureUVsProjection(t *testing.T) {
	m := quad()
	out := EnsureUVs(m)
	if out == m {
		t.Fatal("expected a copy for a uv-less mesh")
	}
	if m.HasUVs() {
		t.Error("input mutated")
	}
	if !out.HasUVs() {
		t.Fatal("no uvs produced")
	}
	// quad lies in the xy plane, so the projection is the unit square
	want := []geom.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i, uv := range out.UVs {
		if uv != want[i] {
			t.Error("uv", i, uv, want[i])
		}
	}
}

func TestEnsureUVsIdempotent(t *testing.T) {
	m := quad()
	first := EnsureUVs(m)
	second := EnsureUVs(first)
	if second != first {
		t.Error("mesh with uvs must be returned unchanged")
	}
	// deterministic: projecting the same source twice gives equal uvs
	again := EnsureUVs(m)
	for i := range first.UVs {
		if first.UVs[i] != again.UVs[i] {
			t.Error("uv mismatch at", i)
		}
	}
}

func TestEnsureUVsDegenerate(t *testing.T) {
	m := New("point")
	for i := 0; i < 3; i++ {
		m.Vertices = append(m.Vertices, &geom.Vector3{X: 2, Y: 2, Z: 2})
	}
	m.Faces = []*Face{{Verts: []int{0, 1, 2}}}
	out := EnsureUVs(m)
	for _, uv := range out.UVs {
		if uv.X != 0 || uv.Y != 0 {
			t.Error("degenerate uv", uv)
		}
	}
}

func TestEnsureUVsDominantPlane(t *testing.T) {
	// tall thin box: dominant plane is yz
	m := New("slab")
	m.Vertices = []*geom.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 0.1, Y: 4, Z: 0},
		{X: 0, Y: 4, Z: 2},
	}
	m.Faces = []*Face{{Verts: []int{0, 1, 2}}}
	out := EnsureUVs(m)
	if out.UVs[1].X != 1 {
		t.Error("u should follow y", out.UVs[1])
	}
	if out.UVs[2].Y != 1 {
		t.Error("v should follow z", out.UVs[2])
	}
}
