package kml

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

// Construction misuse.
var (
	ErrMutuallyExclusive      = errors.New("kml: geometry and coordinates are mutually exclusive")
	ErrCoordinatesUnsupported = errors.New("kml: raw coordinates are only accepted by Point, LineString and LinearRing")
)

// CoordinateFormatError reports coordinate text that cannot be parsed, or a
// coordinate sequence that cannot be formatted.
type CoordinateFormatError struct {
	// Text is the offending token or the raw coordinate text.
	Text   string
	Reason string
	Cause  error
}

func (e *CoordinateFormatError) Error() string {
	msg := fmt.Sprintf("kml: %s in coordinates %q", e.Reason, e.Text)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *CoordinateFormatError) Unwrap() error { return e.Cause }

// GeometryParseError reports markup that cannot be decoded into a geometry.
// Element is the serialized markup that triggered the error.
type GeometryParseError struct {
	Element string
	// Missing names the required child element that was absent, if any.
	Missing string
	Cause   error
}

func (e *GeometryParseError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("kml: missing %s in %s", e.Missing, e.Element)
	}
	return fmt.Sprintf("kml: invalid geometry in '%s' caused by '%v'", e.Element, e.Cause)
}

func (e *GeometryParseError) Unwrap() error { return e.Cause }

// UnsupportedGeometryKindError is returned when no markup wrapper exists for
// a geometry kind or element tag.
type UnsupportedGeometryKindError struct {
	Kind geo.Kind
	// Tag is set when the error comes from an element rather than a value.
	Tag string
}

func (e *UnsupportedGeometryKindError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("kml: unsupported geometry element <%s>", e.Tag)
	}
	return fmt.Sprintf("kml: unsupported geometry kind %s", e.Kind)
}
