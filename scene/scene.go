// Package scene tracks loaded objects, visibility and the current
// selection. Objects are stored in an arena and addressed by
// generation-checked handles, so a stale handle can never reach an
// object that replaced the one it was issued for.
package scene

import (
	"fmt"

	"github.com/rika-tools/vertexa/geom"
	"github.com/rika-tools/vertexa/material"
	"github.com/rika-tools/vertexa/mesh"
)

// Handle addresses an object in the scene. The zero Handle is never
// valid and can be used to clear the selection.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) IsZero() bool {
	return h.gen == 0
}

// Object is a loaded mesh plus its render state.
type Object struct {
	Name      string
	Mesh      *mesh.Mesh
	Transform *geom.Matrix4
	Visible   bool
	Material  material.Params
}

// SelectionError reports an operation that needed a valid, selectable
// object and did not get one.
type SelectionError struct {
	Op     string
	Reason string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

type slot struct {
	gen uint32
	obj *Object
}

// State is the ordered object collection. It is confined to a single
// goroutine; see the viewport's completion pump for the worker handoff.
type State struct {
	// AutoClear destroys all loaded objects before each Add.
	AutoClear bool

	slots    []slot
	free     []uint32
	order    []Handle
	selected Handle
	textures *material.TextureCache
}

func New() *State {
	return &State{textures: material.NewTextureCache()}
}

// Add appends a loaded mesh. Material parameters start from the default
// set, overridden by the mesh's shading hints; a texture hint is bound
// best effort.
func (s *State) Add(m *mesh.Mesh) Handle {
	if s.AutoClear {
		s.Clear()
	}
	return s.add(m)
}

// AddAll adds the meshes of one load as a batch, so auto-clear runs
// once rather than per mesh.
func (s *State) AddAll(meshes []*mesh.Mesh) []Handle {
	if s.AutoClear {
		s.Clear()
	}
	handles := make([]Handle, len(meshes))
	for i, m := range meshes {
		handles[i] = s.add(m)
	}
	return handles
}

func (s *State) add(m *mesh.Mesh) Handle {
	obj := &Object{
		Name:      m.Name,
		Mesh:      m,
		Transform: geom.NewMatrix4(),
		Visible:   true,
		Material:  material.FromHint(m.Hint),
	}
	if m.Hint != nil && m.Hint.Texture != "" {
		if tex, err := s.textures.Load(m.Hint.Texture); err == nil {
			obj.Mesh = mesh.EnsureUVs(obj.Mesh)
			obj.Material.Texture = tex
		}
	}

	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}
	s.slots[idx].gen++
	s.slots[idx].obj = obj
	h := Handle{index: idx, gen: s.slots[idx].gen}
	s.order = append(s.order, h)
	return h
}

// Get resolves a handle, nil when stale or zero.
func (s *State) Get(h Handle) *Object {
	if h.IsZero() || int(h.index) >= len(s.slots) {
		return nil
	}
	if s.slots[h.index].gen != h.gen {
		return nil
	}
	return s.slots[h.index].obj
}

// Handles returns live handles in load order.
func (s *State) Handles() []Handle {
	out := make([]Handle, len(s.order))
	copy(out, s.order)
	return out
}

// Objects returns live objects in load order.
func (s *State) Objects() []*Object {
	out := make([]*Object, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.Get(h))
	}
	return out
}

func (s *State) Len() int {
	return len(s.order)
}

// Remove destroys the object. Removing the selected object clears the
// selection. Stale handles are ignored.
func (s *State) Remove(h Handle) {
	if s.Get(h) == nil {
		return
	}
	if s.selected == h {
		s.selected = Handle{}
	}
	s.slots[h.index].obj = nil
	s.slots[h.index].gen++
	s.free = append(s.free, h.index)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear destroys every object and the selection.
func (s *State) Clear() {
	for _, h := range s.Handles() {
		s.Remove(h)
	}
}

// Select sets the selection. A zero handle models a click on empty
// space and clears it. Selecting a hidden object fails and leaves the
// previous selection in place.
func (s *State) Select(h Handle) error {
	if h.IsZero() {
		s.selected = Handle{}
		return nil
	}
	obj := s.Get(h)
	if obj == nil {
		return &SelectionError{Op: "select", Reason: "object no longer exists"}
	}
	if !obj.Visible {
		return &SelectionError{Op: "select", Reason: "object is hidden"}
	}
	s.selected = h
	return nil
}

// Selected returns the selected object, or a zero handle and nil.
func (s *State) Selected() (Handle, *Object) {
	return s.selected, s.Get(s.selected)
}

// Hide makes the object invisible. Hiding the selected object clears
// the selection; hidden objects are not selectable.
func (s *State) Hide(h Handle) {
	obj := s.Get(h)
	if obj == nil {
		return
	}
	obj.Visible = false
	if s.selected == h {
		s.selected = Handle{}
	}
}

// RevealAll makes every object visible again and reports how many were
// hidden.
func (s *State) RevealAll() int {
	n := 0
	for _, obj := range s.Objects() {
		if !obj.Visible {
			obj.Visible = true
			n++
		}
	}
	return n
}

func (s *State) HiddenCount() int {
	n := 0
	for _, obj := range s.Objects() {
		if !obj.Visible {
			n++
		}
	}
	return n
}

// Bounds merges all visible object bounds.
func (s *State) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	for _, obj := range s.Objects() {
		if obj.Visible {
			b.Merge(obj.Mesh.Bounds())
		}
	}
	return b
}
