package viewport

import "github.com/rika-tools/vertexa/geom"

// View is one of the standard camera placements.
type View int

const (
	ViewFront View = iota
	ViewBack
	ViewLeft
	ViewRight
	ViewTop
	ViewBottom
)

func (v View) String() string {
	switch v {
	case ViewFront:
		return "front"
	case ViewBack:
		return "back"
	case ViewLeft:
		return "left"
	case ViewRight:
		return "right"
	case ViewTop:
		return "top"
	case ViewBottom:
		return "bottom"
	}
	return "unknown"
}

// ParseView maps a view name to its View, false for unknown names.
func ParseView(name string) (View, bool) {
	for v := ViewFront; v <= ViewBottom; v++ {
		if v.String() == name {
			return v, true
		}
	}
	return 0, false
}

// Camera is the pose handed to the render surface.
type Camera struct {
	Position   geom.Vector3
	FocalPoint geom.Vector3
	Up         geom.Vector3
}

// conventional setups for a z-up scene; the vertical views use y as up
var viewAxes = map[View]struct{ dir, up geom.Vector3 }{
	ViewFront:  {geom.Vector3{Y: -1}, geom.Vector3{Z: 1}},
	ViewBack:   {geom.Vector3{Y: 1}, geom.Vector3{Z: 1}},
	ViewLeft:   {geom.Vector3{X: -1}, geom.Vector3{Z: 1}},
	ViewRight:  {geom.Vector3{X: 1}, geom.Vector3{Z: 1}},
	ViewTop:    {geom.Vector3{Z: 1}, geom.Vector3{Y: 1}},
	ViewBottom: {geom.Vector3{Z: -1}, geom.Vector3{Y: 1}},
}

// fitMargin pulls the camera slightly past the bounding sphere.
const fitMargin = 1.2

// StandardView places the camera on a principal axis, framing bounds.
func StandardView(view View, bounds *geom.Bounds) Camera {
	axes := viewAxes[view]
	var center geom.Vector3
	dist := geom.Element(fitMargin)
	if bounds != nil && !bounds.IsEmpty() {
		center = bounds.Center()
		if d := bounds.Diagonal(); d > 0 {
			dist = d * fitMargin
		}
	}
	return Camera{
		Position:   *center.Add(axes.dir.Scale(dist)),
		FocalPoint: center,
		Up:         axes.up,
	}
}

// Fit keeps the camera's direction and reframes it on bounds.
func Fit(cam Camera, bounds *geom.Bounds) Camera {
	dir := cam.Position.Sub(&cam.FocalPoint)
	if dir.LenSqr() == 0 {
		dir = &geom.Vector3{Y: -1}
	}
	dir.Normalize()
	var center geom.Vector3
	dist := geom.Element(fitMargin)
	if bounds != nil && !bounds.IsEmpty() {
		center = bounds.Center()
		if d := bounds.Diagonal(); d > 0 {
			dist = d * fitMargin
		}
	}
	return Camera{
		Position:   *center.Add(dir.Scale(dist)),
		FocalPoint: center,
		Up:         cam.Up,
	}
}
