package material

import "github.com/rika-tools/vertexa/mesh"

// FromHint builds the starting parameter set for a freshly loaded
// object. Hints override the defaults only where the source file
// actually carried a value.
func FromHint(h *mesh.Hint) Params {
	p := *Default()
	if h == nil {
		return p
	}
	if h.HasColor {
		p.BaseColor = clampColor(Color{h.BaseColor[0], h.BaseColor[1], h.BaseColor[2]})
		p.Alpha = clamp(h.BaseColor[3], 0, 1)
	}
	if h.Metallic > 0 {
		p.Metallic = clamp(h.Metallic, 0, 1)
	}
	if h.Roughness > 0 {
		p.Roughness = clamp(h.Roughness, 0, 1)
	}
	if h.Emissive != (([3]float32{})) {
		p.EmissionColor = clampColor(Color(h.Emissive))
		p.EmissionStrength = 1
	}
	return p
}
