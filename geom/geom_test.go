package geom

import (
	"testing"
)

func TestVector3(t *testing.T) {
	v := NewVector3(3, 0, 4)
	if v.Len() != 5 {
		t.Error("len", v.Len())
	}
	n := NewVector3(0, 0, 0).Normalize()
	if n.Len() != 1 {
		t.Error("normalize zero vector", n)
	}
	c := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))
	if c.Z != 1 {
		t.Error("cross", c)
	}
}

func TestMatrix4(t *testing.T) {
	tr := NewTranslateMatrix4(1, 2, 3)
	s := NewScaleMatrix4(2, 2, 2)
	m := tr.Mul(s)
	p := m.ApplyTo(&Vector3{X: 1, Y: 1, Z: 1})
	if p.X != 3 || p.Y != 4 || p.Z != 5 {
		t.Error("translate*scale", p)
	}
	if !NewMatrix4().IsIdentity() {
		t.Error("identity")
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds()
	if !b.IsEmpty() {
		t.Error("new bounds not empty")
	}
	if e := b.Extent(); e.X != 0 || e.Y != 0 || e.Z != 0 {
		t.Error("empty extent", e)
	}
	b.Extend(&Vector3{X: -1, Y: 0, Z: 2})
	b.Extend(&Vector3{X: 3, Y: 1, Z: 2})
	e := b.Extent()
	if e.X != 4 || e.Y != 1 || e.Z != 0 {
		t.Error("extent", e)
	}
	c := b.Center()
	if c.X != 1 || c.Y != 0.5 || c.Z != 2 {
		t.Error("center", c)
	}
}

func TestTriangulate(t *testing.T) {
	tris := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
		{0, 0, 1},
	})
	if len(tris) != 2 {
		t.Error("quad", tris)
	}
	if len(Triangulate(nil)) != 0 {
		t.Error("not empty")
	}
}
