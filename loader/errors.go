package loader

import (
	"errors"
	"fmt"
)

// Kind classifies load failures for the UI boundary.
type Kind int

const (
	// UnsupportedFormat is an unrecognized extension. No import is attempted.
	UnsupportedFormat Kind = iota
	// ParseFailure means every applicable importer was tried and failed.
	ParseFailure
	// TriangulationFailure means the CAD kernel could not produce a mesh.
	TriangulationFailure
)

func (k Kind) String() string {
	switch k {
	case UnsupportedFormat:
		return "unsupported format"
	case ParseFailure:
		return "parse failure"
	case TriangulationFailure:
		return "triangulation failure"
	}
	return "unknown"
}

// ErrImporterUnavailable is returned by a primary importer that is not
// installed. It triggers the fallback parser and never reaches callers
// of Load.
var ErrImporterUnavailable = errors.New("importer unavailable")

// Error is a terminal load failure with the offending path.
type Error struct {
	Path   string
	Format Format
	Kind   Kind
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("load %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of a load error, or ok=false for foreign errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
