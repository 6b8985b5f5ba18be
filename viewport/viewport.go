// Package viewport drives the scene from user events: it runs loads,
// forwards results into scene state, and keeps the render surface
// current. All mutation happens on the event goroutine; worker loads
// are handed back through Pump.
package viewport

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/rika-tools/vertexa/loader"
	"github.com/rika-tools/vertexa/material"
	"github.com/rika-tools/vertexa/scene"
)

// RenderSurface receives scene snapshots to draw. Implementations wrap
// the actual rendering engine and own camera interaction and picking.
type RenderSurface interface {
	Sync(objects []*scene.Object)
	SetCamera(cam Camera)
	SetLights(lights []scene.Light)
	Render()
}

type loadOutcome struct {
	path string
	res  *loader.Result
	err  error
}

// Viewport owns the scene state and the pending-load queue.
type Viewport struct {
	Scene      *scene.State
	Controller *scene.Controller
	Lighting   scene.Lighting

	// Status receives one-line progress messages for the status bar.
	Status func(msg string)

	loader  *loader.Loader
	surface RenderSurface
	logger  *log.Logger
	camera  Camera

	pending chan loadOutcome
	cancel  context.CancelFunc
}

func New(l *loader.Loader, surface RenderSurface, logger *log.Logger) *Viewport {
	st := scene.New()
	return &Viewport{
		Scene:      st,
		Controller: scene.NewController(st),
		loader:     l,
		surface:    surface,
		logger:     logger,
		camera:     StandardView(ViewFront, nil),
		pending:    make(chan loadOutcome, 4),
	}
}

func (v *Viewport) status(msg string) {
	if v.Status != nil {
		v.Status(msg)
	}
}

func (v *Viewport) logf(format string, args ...interface{}) {
	if v.logger != nil {
		v.logger.Printf(format, args...)
	}
}

// SetClearOnLoad toggles destroying prior objects before each load.
func (v *Viewport) SetClearOnLoad(enabled bool) {
	v.Scene.AutoClear = enabled
}

func (v *Viewport) ClearOnLoad() bool {
	return v.Scene.AutoClear
}

// LoadFile imports a model synchronously and adds it to the scene.
func (v *Viewport) LoadFile(ctx context.Context, path string) error {
	res, err := v.loader.Load(ctx, path)
	if err != nil {
		v.logf("load failed: %s: %v", path, err)
		v.status("load failed")
		return err
	}
	v.addResult(path, res)
	return nil
}

// StartLoad imports on a worker goroutine. A still-running previous
// load is cancelled; the result is applied by the next Pump call.
func (v *Viewport) StartLoad(path string) {
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.status("loading " + filepath.Base(path))
	go func() {
		res, err := v.loader.Load(ctx, path)
		select {
		case v.pending <- loadOutcome{path: path, res: res, err: err}:
		case <-ctx.Done():
		}
	}()
}

// CancelLoad abandons the running background load, if any.
func (v *Viewport) CancelLoad() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// Pump applies completed background loads. It must run on the same
// goroutine as every other Viewport call and returns the number of
// loads applied.
func (v *Viewport) Pump() int {
	n := 0
	for {
		select {
		case out := <-v.pending:
			n++
			if out.err != nil {
				v.logf("load failed: %s: %v", out.path, out.err)
				v.status("load failed")
				continue
			}
			v.addResult(out.path, out.res)
		default:
			return n
		}
	}
}

func (v *Viewport) addResult(path string, res *loader.Result) {
	v.Scene.AddAll(res.Meshes)
	for _, w := range res.Warnings {
		v.status("warning: " + w)
	}
	v.logf("loaded %s (%s, %d objects)", path, res.Format, len(res.Meshes))
	v.status("loaded: " + filepath.Base(path))
	v.refresh()
	v.FitToView()
}

// ObjectPicked drives selection from the surface's hit test. A zero
// handle is a click on empty space.
func (v *Viewport) ObjectPicked(h scene.Handle) {
	if err := v.Scene.Select(h); err != nil {
		v.status(err.Error())
		return
	}
	if h.IsZero() {
		v.status("selection cleared")
	} else {
		v.status("object selected")
	}
	v.refresh()
}

// RemoveSelected destroys the selected object.
func (v *Viewport) RemoveSelected() {
	h, obj := v.Scene.Selected()
	if obj == nil {
		v.status("no selection")
		return
	}
	v.Scene.Remove(h)
	v.status("removed selected object")
	v.refresh()
}

// HideSelected hides the selected object and drops the selection.
func (v *Viewport) HideSelected() {
	h, obj := v.Scene.Selected()
	if obj == nil {
		v.status("no selection")
		return
	}
	v.Scene.Hide(h)
	v.status("object hidden")
	v.refresh()
}

// RevealAll restores every hidden object.
func (v *Viewport) RevealAll() {
	n := v.Scene.RevealAll()
	v.status(fmt.Sprintf("revealed %d objects", n))
	v.refresh()
}

// Clear empties the viewport.
func (v *Viewport) Clear() {
	v.Scene.Clear()
	v.status("viewport cleared")
	v.refresh()
}

// ApplyMaterial forwards a live edit to the selected object. The
// surface is refreshed before returning so the edit is visible ahead of
// the next input event.
func (v *Viewport) ApplyMaterial(d *material.Delta) error {
	if err := v.Controller.Apply(d); err != nil {
		v.status(UserMessage(err))
		return err
	}
	v.refresh()
	return nil
}

// AssignTexture binds an image file to the selected object.
func (v *Viewport) AssignTexture(path string) error {
	if err := v.Controller.AssignTexture(path); err != nil {
		v.logf("texture assign failed: %s: %v", path, err)
		v.status("texture assign failed")
		return err
	}
	v.status("texture assigned")
	v.refresh()
	return nil
}

// SetStandardView snaps the camera to a principal axis.
func (v *Viewport) SetStandardView(view View) {
	v.camera = StandardView(view, v.Scene.Bounds())
	v.status("view: " + view.String())
	v.pushCamera()
}

// FitToView reframes the current camera on the scene bounds.
func (v *Viewport) FitToView() {
	v.camera = Fit(v.camera, v.Scene.Bounds())
	v.status("Fit to view")
	v.pushCamera()
}

func (v *Viewport) Camera() Camera {
	return v.camera
}

// SetThreePointLighting toggles the key/fill/back rig.
func (v *Viewport) SetThreePointLighting(enabled bool) {
	v.Lighting.SetThreePoint(enabled)
	if v.surface != nil {
		v.surface.SetLights(v.Lighting.Lights)
		v.surface.Render()
	}
}

func (v *Viewport) refresh() {
	if v.surface != nil {
		v.surface.Sync(v.Scene.Objects())
		v.surface.Render()
	}
}

func (v *Viewport) pushCamera() {
	if v.surface != nil {
		v.surface.SetCamera(v.camera)
		v.surface.Render()
	}
}

// UserMessage maps an error to the text shown in the message dialog.
// Unrecognized errors get a generic message; the full cause stays in
// the log.
func UserMessage(err error) string {
	if kind, ok := loader.KindOf(err); ok {
		switch kind {
		case loader.UnsupportedFormat:
			return "unsupported file type"
		case loader.TriangulationFailure:
			return "CAD triangulation failed"
		default:
			return "failed to load file"
		}
	}
	var sel *scene.SelectionError
	if errors.As(err, &sel) {
		return "no selection"
	}
	var tex *material.TextureError
	if errors.As(err, &tex) {
		return "failed to assign texture"
	}
	return "unexpected error"
}
