package geom

import "github.com/chewxy/math32"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vector3
	Max Vector3
}

// NewBounds returns an empty box. Extending it with any point makes it valid.
func NewBounds() *Bounds {
	return &Bounds{
		Min: Vector3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: Vector3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
}

func (b *Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

func (b *Bounds) Extend(v *Vector3) {
	b.Min.X = math32.Min(b.Min.X, v.X)
	b.Min.Y = math32.Min(b.Min.Y, v.Y)
	b.Min.Z = math32.Min(b.Min.Z, v.Z)
	b.Max.X = math32.Max(b.Max.X, v.X)
	b.Max.Y = math32.Max(b.Max.Y, v.Y)
	b.Max.Z = math32.Max(b.Max.Z, v.Z)
}

func (b *Bounds) Merge(other *Bounds) {
	if other == nil || other.IsEmpty() {
		return
	}
	b.Extend(&other.Min)
	b.Extend(&other.Max)
}

// Extent returns the box size per axis. Zero for an empty box.
func (b *Bounds) Extent() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return *b.Max.Sub(&b.Min)
}

func (b *Bounds) Center() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return *b.Min.Add(&b.Max).Scale(0.5)
}

// Diagonal returns the length of the box diagonal.
func (b *Bounds) Diagonal() Element {
	e := b.Extent()
	return e.Len()
}
