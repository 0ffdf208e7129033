package kml

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AltitudeMode specifies how altitude components in coordinates are interpreted.
type AltitudeMode string

// Altitude modes.
const (
	ClampToGround    AltitudeMode = "clampToGround"
	RelativeToGround AltitudeMode = "relativeToGround"
	Absolute         AltitudeMode = "absolute"
)

// ParseAltitudeMode validates an altitudeMode value.
func ParseAltitudeMode(s string) (AltitudeMode, error) {
	switch m := AltitudeMode(strings.TrimSpace(s)); m {
	case ClampToGround, RelativeToGround, Absolute:
		return m, nil
	}
	return "", errors.Errorf("kml: invalid altitude mode %q", s)
}

// Verbosity controls which rendering hints are written on encode.
type Verbosity int

const (
	// Terse writes only hints that differ from the KML defaults.
	Terse Verbosity = iota
	// Normal writes every hint that is set.
	Normal
	// Verbose writes all hints, filling unset ones with their defaults.
	Verbose
)

// ParseVerbosity maps "terse", "normal" and "verbose" to a Verbosity.
// An empty string is Normal.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terse":
		return Terse, nil
	case "", "normal":
		return Normal, nil
	case "verbose":
		return Verbose, nil
	}
	return Normal, errors.Errorf("kml: invalid verbosity %q", s)
}

// Hints are the per-geometry rendering hints. A nil field is unset.
type Hints struct {
	Extrude      *bool
	Tessellate   *bool
	AltitudeMode *AltitudeMode
}

// IsZero reports whether no hint is set.
func (h Hints) IsZero() bool {
	return h.Extrude == nil && h.Tessellate == nil && h.AltitudeMode == nil
}

func (h Hints) clone() Hints {
	var out Hints
	if h.Extrude != nil {
		v := *h.Extrude
		out.Extrude = &v
	}
	if h.Tessellate != nil {
		v := *h.Tessellate
		out.Tessellate = &v
	}
	if h.AltitudeMode != nil {
		v := *h.AltitudeMode
		out.AltitudeMode = &v
	}
	return out
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func writeBoolHint(el *etree.Element, tag string, v *bool, verbosity Verbosity) {
	switch {
	case v == nil && verbosity == Verbose:
		el.CreateElement(tag).SetText(formatBool(false))
	case v == nil:
	case !*v && verbosity == Terse:
	default:
		el.CreateElement(tag).SetText(formatBool(*v))
	}
}

// encode appends the hint children in KML schema order.
func (h Hints) encode(ns string, el *etree.Element, verbosity Verbosity) {
	writeBoolHint(el, qualify(ns, "extrude"), h.Extrude, verbosity)
	writeBoolHint(el, qualify(ns, "tessellate"), h.Tessellate, verbosity)

	mode := h.AltitudeMode
	switch {
	case mode == nil && verbosity == Verbose:
		el.CreateElement(qualify(ns, "altitudeMode")).SetText(string(ClampToGround))
	case mode == nil:
	case *mode == ClampToGround && verbosity == Terse:
	default:
		el.CreateElement(qualify(ns, "altitudeMode")).SetText(string(*mode))
	}
}

func decodeBool(el *etree.Element) *bool {
	if el == nil {
		return nil
	}
	text := strings.ToLower(strings.TrimSpace(el.Text()))
	v := text == "1" || text == "true"
	return &v
}

// decodeHints reads extrude, tessellate and altitudeMode children. An
// unknown altitude mode is fatal only when strict.
func decodeHints(ns string, el *etree.Element, strict bool) (Hints, error) {
	h := Hints{
		Extrude:    decodeBool(el.SelectElement(qualify(ns, "extrude"))),
		Tessellate: decodeBool(el.SelectElement(qualify(ns, "tessellate"))),
	}

	if modeEl := el.SelectElement(qualify(ns, "altitudeMode")); modeEl != nil {
		mode, err := ParseAltitudeMode(modeEl.Text())
		if err != nil {
			text := serialize(el)
			log.Error().
				Err(err).
				Str("element", text).
				Msg("Invalid altitude mode")
			if strict {
				return h, &GeometryParseError{Element: text, Cause: err}
			}
		} else {
			h.AltitudeMode = &mode
		}
	}

	return h, nil
}
