// Package step loads STEP models by delegating tessellation to an
// external CAD kernel that writes STL.
package step

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rika-tools/vertexa/mesh"
	"github.com/rika-tools/vertexa/stl"
)

// Triangulator converts a CAD file into triangle meshes. deflection is
// the linear tessellation tolerance in model units.
type Triangulator interface {
	Triangulate(ctx context.Context, path string, deflection float32) ([]*mesh.Mesh, error)
}

// DeflectionForDiagonal derives the tessellation tolerance from the
// model's bounding box diagonal.
func DeflectionForDiagonal(diag float32) float32 {
	d := diag / 500
	if d < 1e-4 {
		d = 1e-4
	}
	return d
}

// ExecKernel runs a command line, substituting {input}, {output} and
// {deflection}, and reads the STL it produces.
//
// Example: []string{"occt-convert", "{input}", "{output}", "-deflection", "{deflection}"}
type ExecKernel struct {
	Command []string
}

func (k *ExecKernel) Triangulate(ctx context.Context, path string, deflection float32) ([]*mesh.Mesh, error) {
	if len(k.Command) == 0 {
		return nil, fmt.Errorf("step: no kernel command configured")
	}
	tmp, err := os.MkdirTemp("", "vertexa-step-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)
	out := filepath.Join(tmp, "out.stl")

	args := make([]string, len(k.Command))
	for i, a := range k.Command {
		a = strings.ReplaceAll(a, "{input}", path)
		a = strings.ReplaceAll(a, "{output}", out)
		a = strings.ReplaceAll(a, "{deflection}", strconv.FormatFloat(float64(deflection), 'g', -1, 32))
		args[i] = a
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("step: kernel failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("step: kernel failed: %w", err)
	}

	meshes, err := stl.Load(out)
	if err != nil {
		return nil, fmt.Errorf("step: kernel output: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, m := range meshes {
		m.Name = name
	}
	return meshes, nil
}
