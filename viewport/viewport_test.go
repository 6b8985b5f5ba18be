package viewport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rika-tools/vertexa/loader"
	"github.com/rika-tools/vertexa/material"
	"github.com/rika-tools/vertexa/scene"
)

type fakeSurface struct {
	objects []*scene.Object
	camera  Camera
	lights  []scene.Light
	renders int
}

func (f *fakeSurface) Sync(objects []*scene.Object) { f.objects = objects }
func (f *fakeSurface) SetCamera(cam Camera)         { f.camera = cam }
func (f *fakeSurface) SetLights(l []scene.Light)    { f.lights = l }
func (f *fakeSurface) Render()                      { f.renders++ }

const objQuad = `
v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
f 1 2 3 4
`

func writeObj(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(objQuad), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newViewport() (*Viewport, *fakeSurface) {
	surface := &fakeSurface{}
	return New(loader.New(), surface, nil), surface
}

func TestLoadFile(t *testing.T) {
	v, surface := newViewport()
	var messages []string
	v.Status = func(m string) { messages = append(messages, m) }

	if err := v.LoadFile(context.Background(), writeObj(t)); err != nil {
		t.Fatal(err)
	}
	if v.Scene.Len() != 1 {
		t.Fatal("scene len:", v.Scene.Len())
	}
	if len(surface.objects) != 1 {
		t.Error("surface not synced")
	}
	if surface.renders == 0 {
		t.Error("no render issued")
	}
	found := false
	for _, m := range messages {
		if m == "loaded: quad.obj" {
			found = true
		}
	}
	if !found {
		t.Error("messages:", messages)
	}
	// camera framed on the quad
	if surface.camera.FocalPoint.X != 1 || surface.camera.FocalPoint.Y != 1 {
		t.Error("focal point:", surface.camera.FocalPoint)
	}
}

func TestLoadFileError(t *testing.T) {
	v, _ := newViewport()
	err := v.LoadFile(context.Background(), "model.xyz")
	if err == nil {
		t.Fatal("expected error")
	}
	if UserMessage(err) != "unsupported file type" {
		t.Error("message:", UserMessage(err))
	}
	if v.Scene.Len() != 0 {
		t.Error("scene len:", v.Scene.Len())
	}
}

func TestStartLoadPump(t *testing.T) {
	v, _ := newViewport()
	v.StartLoad(writeObj(t))

	deadline := time.Now().Add(5 * time.Second)
	for v.Pump() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("load never completed")
		}
		time.Sleep(time.Millisecond)
	}
	if v.Scene.Len() != 1 {
		t.Error("scene len:", v.Scene.Len())
	}
}

func TestPickAndEdit(t *testing.T) {
	v, _ := newViewport()
	if err := v.LoadFile(context.Background(), writeObj(t)); err != nil {
		t.Fatal(err)
	}
	h := v.Scene.Handles()[0]
	v.ObjectPicked(h)
	if sel, obj := v.Scene.Selected(); sel != h || obj == nil {
		t.Fatal("not selected")
	}
	if err := v.ApplyMaterial(&material.Delta{Metallic: material.Float(0.8)}); err != nil {
		t.Fatal(err)
	}
	_, obj := v.Scene.Selected()
	if obj.Material.Metallic != 0.8 {
		t.Error("metallic:", obj.Material.Metallic)
	}
	v.RemoveSelected()
	if v.Scene.Len() != 0 {
		t.Error("scene len:", v.Scene.Len())
	}
	if _, obj := v.Scene.Selected(); obj != nil {
		t.Error("selection survived removal")
	}
}

func TestApplyMaterialWithoutSelection(t *testing.T) {
	v, _ := newViewport()
	err := v.ApplyMaterial(&material.Delta{Metallic: material.Float(1)})
	if err == nil {
		t.Fatal("expected error")
	}
	if UserMessage(err) != "no selection" {
		t.Error("message:", UserMessage(err))
	}
}

func TestStandardViews(t *testing.T) {
	v, surface := newViewport()
	if err := v.LoadFile(context.Background(), writeObj(t)); err != nil {
		t.Fatal(err)
	}
	v.SetStandardView(ViewTop)
	if surface.camera.Position.Z <= surface.camera.FocalPoint.Z {
		t.Error("top view camera:", surface.camera)
	}
	if surface.camera.Up.Y != 1 {
		t.Error("up:", surface.camera.Up)
	}
	v.SetStandardView(ViewFront)
	if surface.camera.Position.Y >= surface.camera.FocalPoint.Y {
		t.Error("front view camera:", surface.camera)
	}
}

func TestParseView(t *testing.T) {
	for v := ViewFront; v <= ViewBottom; v++ {
		got, ok := ParseView(v.String())
		if !ok || got != v {
			t.Error("round trip", v)
		}
	}
	if _, ok := ParseView("sideways"); ok {
		t.Error("accepted unknown view name")
	}
}

func TestLighting(t *testing.T) {
	v, surface := newViewport()
	v.SetThreePointLighting(true)
	if len(surface.lights) != 3 {
		t.Fatal("lights:", len(surface.lights))
	}
	v.SetThreePointLighting(false)
	if surface.lights != nil {
		t.Error("lights not removed")
	}
}

func TestUserMessageUnknown(t *testing.T) {
	if msg := UserMessage(errors.New("boom")); msg != "unexpected error" {
		t.Error("message:", msg)
	}
}
