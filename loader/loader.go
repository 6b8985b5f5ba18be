// Package loader dispatches model files by extension to format handlers
// and normalizes the result. Formats with an optional primary importer
// (dae, fbx) fall back to the built-in parser when the primary reports
// itself unavailable.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/rika-tools/vertexa/dae"
	"github.com/rika-tools/vertexa/fbx"
	"github.com/rika-tools/vertexa/gltfutil"
	"github.com/rika-tools/vertexa/mesh"
	"github.com/rika-tools/vertexa/obj"
	"github.com/rika-tools/vertexa/ply"
	"github.com/rika-tools/vertexa/step"
	"github.com/rika-tools/vertexa/stl"
)

// Format is a detected file format tag.
type Format int

const (
	FormatUnknown Format = iota
	FormatOBJ
	FormatSTL
	FormatGLTF
	FormatPLY
	FormatDAE
	FormatFBX
	FormatSTEP
)

var formatNames = map[Format]string{
	FormatUnknown: "unknown",
	FormatOBJ:     "polygon-obj",
	FormatSTL:     "polygon-stl",
	FormatGLTF:    "polygon-gltf",
	FormatPLY:     "polygon-ply",
	FormatDAE:     "polygon-dae",
	FormatFBX:     "polygon-fbx",
	FormatSTEP:    "cad-step",
}

func (f Format) String() string {
	return formatNames[f]
}

var extFormats = map[string]Format{
	".obj":  FormatOBJ,
	".stl":  FormatSTL,
	".gltf": FormatGLTF,
	".glb":  FormatGLTF,
	".ply":  FormatPLY,
	".dae":  FormatDAE,
	".fbx":  FormatFBX,
	".stp":  FormatSTEP,
	".step": FormatSTEP,
}

// Detect resolves the format tag from the extension, case-insensitive.
func Detect(path string) Format {
	return extFormats[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions lists the recognized extensions with leading dots.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extFormats))
	for e := range extFormats {
		exts = append(exts, e)
	}
	return exts
}

// Importer reads a model file into normalized meshes. A primary importer
// that is not installed returns ErrImporterUnavailable.
type Importer func(path string) ([]*mesh.Mesh, error)

// Result is a successful load.
type Result struct {
	Format   Format
	Meshes   []*mesh.Mesh
	Warnings []string
}

// DefaultDeflection is the CAD tessellation tolerance used when the
// caller does not configure one.
const DefaultDeflection = 0.1

// Loader routes paths to format handlers.
//
// Primary holds optional native importers for the formats that have a
// fallback chain. A missing entry behaves like an importer that reports
// unavailable, so the built-in parser is used.
type Loader struct {
	Primary    map[Format]Importer
	Kernel     step.Triangulator
	Deflection float32
	Logger     *log.Logger
}

func New() *Loader {
	return &Loader{Primary: map[Format]Importer{}}
}

func (l *Loader) logf(format string, args ...interface{}) {
	if l.Logger != nil {
		l.Logger.Printf(format, args...)
	}
}

// Load imports one model file. ctx cancels the CAD kernel path; the
// in-process parsers are not interruptible.
func (l *Loader) Load(ctx context.Context, path string) (*Result, error) {
	format := Detect(path)
	res := &Result{Format: format}
	switch format {
	case FormatOBJ:
		return l.direct(res, path, obj.Load)
	case FormatSTL:
		return l.direct(res, path, stl.Load)
	case FormatGLTF:
		return l.direct(res, path, gltfutil.Load)
	case FormatPLY:
		return l.direct(res, path, ply.Load)
	case FormatDAE:
		return l.withFallback(res, path, dae.Load)
	case FormatFBX:
		return l.withFallback(res, path, fbx.Load)
	case FormatSTEP:
		return l.triangulate(ctx, res, path)
	}
	return nil, &Error{Path: path, Format: format, Kind: UnsupportedFormat}
}

func (l *Loader) direct(res *Result, path string, imp Importer) (*Result, error) {
	meshes, err := imp(path)
	if err != nil {
		return nil, &Error{Path: path, Format: res.Format, Kind: ParseFailure, Err: err}
	}
	return l.finish(res, path, meshes)
}

// withFallback tries the registered primary importer, then the built-in
// parser exactly once if the primary is unavailable. A primary parse
// failure is terminal: the file was readable by the preferred importer's
// standards and a second opinion would mask the actual error.
func (l *Loader) withFallback(res *Result, path string, fallback Importer) (*Result, error) {
	if primary, ok := l.Primary[res.Format]; ok {
		meshes, err := primary(path)
		if err == nil {
			return l.finish(res, path, meshes)
		}
		if !errors.Is(err, ErrImporterUnavailable) {
			return nil, &Error{Path: path, Format: res.Format, Kind: ParseFailure, Err: err}
		}
		l.logf("%s importer unavailable, using built-in parser: %s", res.Format, path)
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s importer unavailable, using built-in parser", res.Format))
	}
	meshes, err := fallback(path)
	if err != nil {
		return nil, &Error{Path: path, Format: res.Format, Kind: ParseFailure, Err: err}
	}
	return l.finish(res, path, meshes)
}

func (l *Loader) triangulate(ctx context.Context, res *Result, path string) (*Result, error) {
	if l.Kernel == nil {
		return nil, &Error{Path: path, Format: res.Format, Kind: TriangulationFailure,
			Err: fmt.Errorf("no CAD kernel configured")}
	}
	deflection := l.Deflection
	if deflection <= 0 {
		deflection = DefaultDeflection
	}
	meshes, err := l.Kernel.Triangulate(ctx, path, deflection)
	if err != nil {
		return nil, &Error{Path: path, Format: res.Format, Kind: TriangulationFailure, Err: err}
	}
	return l.finish(res, path, meshes)
}

func (l *Loader) finish(res *Result, path string, meshes []*mesh.Mesh) (*Result, error) {
	var kept []*mesh.Mesh
	for _, m := range meshes {
		if len(m.Vertices) == 0 || len(m.Faces) == 0 {
			continue
		}
		m.EnsureNormals()
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return nil, &Error{Path: path, Format: res.Format, Kind: ParseFailure,
			Err: fmt.Errorf("no geometry")}
	}
	res.Meshes = kept
	return res, nil
}
