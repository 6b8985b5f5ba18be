// Package material holds the editable shading parameter set attached to
// each scene object and the image texture pipeline behind it.
package material

import "github.com/chewxy/math32"

// Color is an RGB triple, each channel in [0,1].
type Color [3]float32

// Params is a principled-BSDF style parameter set. Every numeric field has
// a documented range; values written through Apply are clamped to the
// nearest bound, and the clamped value is what later reads return:
//
//	Metallic, Roughness, Alpha, Transmission, Specular: [0,1]
//	IOR: [1,3]
//	EmissionStrength: [0,50]
//	color channels: [0,1]
type Params struct {
	BaseColor        Color
	Metallic         float32
	Roughness        float32
	IOR              float32
	Alpha            float32
	EmissionColor    Color
	EmissionStrength float32
	Transmission     float32
	Specular         float32
	UsePBR           bool

	// Texture is the bound base color image, nil when unset.
	Texture *Texture
}

// Default returns the parameter set a freshly loaded object starts with.
func Default() *Params {
	return &Params{
		BaseColor: Color{0.8, 0.8, 0.8},
		Roughness: 0.5,
		IOR:       1.45,
		Alpha:     1,
		Specular:  0.5,
		UsePBR:    true,
	}
}

// Delta is a partial update: nil fields are left untouched.
type Delta struct {
	BaseColor        *Color
	Metallic         *float32
	Roughness        *float32
	IOR              *float32
	Alpha            *float32
	EmissionColor    *Color
	EmissionStrength *float32
	Transmission     *float32
	Specular         *float32
	UsePBR           *bool
}

// Apply merges d into p, clamping every value into its documented range.
func (p *Params) Apply(d *Delta) {
	if d == nil {
		return
	}
	if d.BaseColor != nil {
		p.BaseColor = clampColor(*d.BaseColor)
	}
	if d.Metallic != nil {
		p.Metallic = clamp(*d.Metallic, 0, 1)
	}
	if d.Roughness != nil {
		p.Roughness = clamp(*d.Roughness, 0, 1)
	}
	if d.IOR != nil {
		p.IOR = clamp(*d.IOR, 1, 3)
	}
	if d.Alpha != nil {
		p.Alpha = clamp(*d.Alpha, 0, 1)
	}
	if d.EmissionColor != nil {
		p.EmissionColor = clampColor(*d.EmissionColor)
	}
	if d.EmissionStrength != nil {
		p.EmissionStrength = clamp(*d.EmissionStrength, 0, 50)
	}
	if d.Transmission != nil {
		p.Transmission = clamp(*d.Transmission, 0, 1)
	}
	if d.Specular != nil {
		p.Specular = clamp(*d.Specular, 0, 1)
	}
	if d.UsePBR != nil {
		p.UsePBR = *d.UsePBR
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

func clampColor(c Color) Color {
	return Color{clamp(c[0], 0, 1), clamp(c[1], 0, 1), clamp(c[2], 0, 1)}
}

// Float returns a pointer for Delta literals.
func Float(v float32) *float32 { return &v }

// Bool returns a pointer for Delta literals.
func Bool(v bool) *bool { return &v }

// RGB returns a color pointer for Delta literals.
func RGB(r, g, b float32) *Color { return &Color{r, g, b} }
