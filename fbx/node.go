package fbx

import (
	"github.com/rika-tools/vertexa/geom"
)

// Node is a raw FBX record: a name, a list of attributes and child records.
// Both the binary and the ascii reader produce this tree.
type Node struct {
	Name     string
	Attrs    []*Attr
	Children []*Node
}

// Attr is a single node attribute. Array attributes carry Count > 0.
type Attr struct {
	Value interface{}
	Count uint
}

func (n *Node) FindChild(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (n *Node) GetChildren() []*Node {
	if n == nil {
		return nil
	}
	return n.Children
}

func (n *Node) Attr(i int) *Attr {
	if n == nil || i >= len(n.Attrs) {
		return nil
	}
	return n.Attrs[i]
}

func (n *Node) AttrString(i int) string {
	return n.Attr(i).ToString("")
}

func (n *Node) AttrInt64(i int) int64 {
	return n.Attr(i).ToInt64(0)
}

func (a *Attr) ToInt64(def int64) int64 {
	if a == nil {
		return def
	}
	switch v := a.Value.(type) {
	case byte:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	}
	return def
}

func (a *Attr) ToFloat32(def float32) float32 {
	if a == nil {
		return def
	}
	switch v := a.Value.(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	case int32:
		return float32(v)
	case int64:
		return float32(v)
	}
	return def
}

func (a *Attr) ToString(def string) string {
	if a == nil {
		return def
	}
	switch v := a.Value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return def
}

func (a *Attr) ToFloat32Slice() []float32 {
	if a == nil {
		return nil
	}
	switch vv := a.Value.(type) {
	case []float32:
		return vv
	case []float64:
		r := make([]float32, len(vv))
		for i, v := range vv {
			r[i] = float32(v)
		}
		return r
	case []int32:
		r := make([]float32, len(vv))
		for i, v := range vv {
			r[i] = float32(v)
		}
		return r
	case []int64:
		r := make([]float32, len(vv))
		for i, v := range vv {
			r[i] = float32(v)
		}
		return r
	}
	return nil
}

func (a *Attr) ToInt32Slice() []int32 {
	if a == nil {
		return nil
	}
	switch vv := a.Value.(type) {
	case []int32:
		return vv
	case []int64:
		r := make([]int32, len(vv))
		for i, v := range vv {
			r[i] = int32(v)
		}
		return r
	case []byte:
		r := make([]int32, len(vv))
		for i, v := range vv {
			r[i] = int32(v)
		}
		return r
	}
	return nil
}

func (a *Attr) ToVec3Slice() []*geom.Vector3 {
	f := a.ToFloat32Slice()
	var vv []*geom.Vector3
	for i := 0; i+2 < len(f); i += 3 {
		vv = append(vv, &geom.Vector3{X: f[i], Y: f[i+1], Z: f[i+2]})
	}
	return vv
}

func (a *Attr) ToVec2Slice() []geom.Vector2 {
	f := a.ToFloat32Slice()
	var vv []geom.Vector2
	for i := 0; i+1 < len(f); i += 2 {
		vv = append(vv, geom.Vector2{X: f[i], Y: f[i+1]})
	}
	return vv
}
