package scene

import (
	"github.com/rika-tools/vertexa/material"
	"github.com/rika-tools/vertexa/mesh"
)

// Controller applies live material edits to scene objects. Edits
// without an explicit handle go to the current selection.
type Controller struct {
	state *State
}

func NewController(s *State) *Controller {
	return &Controller{state: s}
}

// Apply merges a partial parameter update into the selected object,
// clamping out-of-range values.
func (c *Controller) Apply(d *material.Delta) error {
	_, obj := c.state.Selected()
	if obj == nil {
		return &SelectionError{Op: "apply material", Reason: "nothing selected"}
	}
	obj.Material.Apply(d)
	return nil
}

// ApplyTo is Apply for an explicit object.
func (c *Controller) ApplyTo(h Handle, d *material.Delta) error {
	obj := c.state.Get(h)
	if obj == nil {
		return &SelectionError{Op: "apply material", Reason: "object no longer exists"}
	}
	obj.Material.Apply(d)
	return nil
}

// AssignTexture decodes an image and binds it to the selected object.
// A mesh without texture coordinates gets planar UVs first, so the
// texture is visible immediately.
func (c *Controller) AssignTexture(path string) error {
	_, obj := c.state.Selected()
	if obj == nil {
		return &SelectionError{Op: "assign texture", Reason: "nothing selected"}
	}
	tex, err := c.state.textures.Load(path)
	if err != nil {
		return err
	}
	obj.Mesh = mesh.EnsureUVs(obj.Mesh)
	obj.Material.Texture = tex
	return nil
}

// ClearTexture unbinds the selected object's texture.
func (c *Controller) ClearTexture() error {
	_, obj := c.state.Selected()
	if obj == nil {
		return &SelectionError{Op: "clear texture", Reason: "nothing selected"}
	}
	obj.Material.Texture = nil
	return nil
}

// Params returns the selected object's current parameter set for the
// editor panel to display.
func (c *Controller) Params() (*material.Params, error) {
	_, obj := c.state.Selected()
	if obj == nil {
		return nil, &SelectionError{Op: "read material", Reason: "nothing selected"}
	}
	return &obj.Material, nil
}
