package material

import "testing"

func TestApplyClamps(t *testing.T) {
	p := Default()
	p.Apply(&Delta{Roughness: Float(1.5)})
	if p.Roughness != 1 {
		t.Error("roughness high clamp", p.Roughness)
	}
	p.Apply(&Delta{Roughness: Float(-0.2)})
	if p.Roughness != 0 {
		t.Error("roughness low clamp", p.Roughness)
	}
	p.Apply(&Delta{IOR: Float(0.5)})
	if p.IOR != 1 {
		t.Error("ior low clamp", p.IOR)
	}
	p.Apply(&Delta{EmissionStrength: Float(100)})
	if p.EmissionStrength != 50 {
		t.Error("emission clamp", p.EmissionStrength)
	}
	p.Apply(&Delta{BaseColor: RGB(2, -1, 0.5)})
	if p.BaseColor != (Color{1, 0, 0.5}) {
		t.Error("color clamp", p.BaseColor)
	}
}

func TestApplyPartial(t *testing.T) {
	p := Default()
	p.Apply(&Delta{Metallic: Float(0.8)})
	if p.Metallic != 0.8 {
		t.Error("metallic", p.Metallic)
	}
	if p.Roughness != 0.5 || p.Alpha != 1 {
		t.Error("untouched fields changed", p)
	}
	p.Apply(nil)
	if p.Metallic != 0.8 {
		t.Error("nil delta changed params")
	}
}
