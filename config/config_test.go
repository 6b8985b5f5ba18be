package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !c.ClearOnLoad {
		t.Error("defaults not applied")
	}
	if c.LastDir == "" {
		t.Error("empty last dir")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	c := Default()
	c.LastDir = "/models"
	c.ThreePointLighting = true
	c.LightColors.Key = [3]float32{1, 0.5, 0}
	c.StepKernel = []string{"occt-convert", "{input}", "{output}"}
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastDir != "/models" || !got.ThreePointLighting {
		t.Error("round trip:", got)
	}
	if got.LightColors.Key != [3]float32{1, 0.5, 0} {
		t.Error("light color:", got.LightColors.Key)
	}
	if len(got.StepKernel) != 3 {
		t.Error("kernel:", got.StepKernel)
	}
}

func TestLoadBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for broken file")
	}
}
