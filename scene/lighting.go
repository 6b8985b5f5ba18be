package scene

import "github.com/rika-tools/vertexa/geom"

// Light is a positional scene light aimed at the origin.
type Light struct {
	Name      string
	Position  geom.Vector3
	Color     [3]float32
	Intensity float32
}

// Lighting is the viewport light rig. Disabled means the render surface
// falls back to its default headlight.
type Lighting struct {
	ThreePoint bool
	Lights     []Light
}

// ThreePointLights returns the key/fill/back rig.
func ThreePointLights() []Light {
	white := [3]float32{1, 1, 1}
	return []Light{
		{Name: "key", Position: geom.Vector3{X: 1.5, Y: 1.0, Z: 1.5}, Color: white, Intensity: 0.9},
		{Name: "fill", Position: geom.Vector3{X: -1.5, Y: 0.8, Z: 1.2}, Color: white, Intensity: 0.5},
		{Name: "back", Position: geom.Vector3{X: 0, Y: -1.5, Z: 1.2}, Color: white, Intensity: 0.4},
	}
}

// SetThreePoint toggles the rig.
func (l *Lighting) SetThreePoint(enabled bool) {
	l.ThreePoint = enabled
	if enabled {
		l.Lights = ThreePointLights()
	} else {
		l.Lights = nil
	}
}

// SetColors recolors the rig in key, fill, back order.
func (l *Lighting) SetColors(key, fill, back [3]float32) {
	colors := [][3]float32{key, fill, back}
	for i := range l.Lights {
		if i < len(colors) {
			l.Lights[i].Color = colors[i]
		}
	}
}
