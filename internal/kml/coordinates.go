package kml

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

// DefaultPrecision is the number of decimals written when none is given.
const DefaultPrecision = 6

// MaxPrecision is the largest number of decimals accepted by Format. A
// float64 carries no more than 17 significant digits.
const MaxPrecision = 17

// commaSpaces matches the stray blanks hand-edited files leave after commas.
var commaSpaces = regexp.MustCompile(`, +`)

// Parse reads KML coordinate text: whitespace separated tuples of two or
// three comma separated numbers. All tuples must share one arity.
func Parse(text string) (geo.Sequence, error) {
	tuples := strings.Fields(commaSpaces.ReplaceAllString(strings.TrimSpace(text), ","))
	if len(tuples) == 0 {
		return geo.Sequence{}, nil
	}

	seq := make(geo.Sequence, 0, len(tuples))
	for _, tuple := range tuples {
		fields := strings.Split(tuple, ",")
		if len(fields) != 2 && len(fields) != 3 {
			return nil, &CoordinateFormatError{Text: tuple, Reason: "expected 2 or 3 values"}
		}

		c := make(geo.Coord, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &CoordinateFormatError{Text: tuple, Reason: "non-numeric value", Cause: err}
			}
			c[i] = v
		}

		if len(seq) > 0 && c.Dim() != seq[0].Dim() {
			return nil, &CoordinateFormatError{Text: text, Reason: "mixed 2D and 3D tuples"}
		}
		seq = append(seq, c)
	}

	return seq, nil
}

// Format renders coords as KML coordinate text using fixed-point notation.
// A negative precision selects DefaultPrecision; values above MaxPrecision
// are clamped to it.
func Format(coords geo.Sequence, precision int) (string, error) {
	if len(coords) == 0 {
		return "", nil
	}
	switch {
	case precision < 0:
		precision = DefaultPrecision
	case precision > MaxPrecision:
		precision = MaxPrecision
	}

	dim := coords[0].Dim()
	if dim != 2 && dim != 3 {
		return "", &CoordinateFormatError{Text: formatRaw(coords), Reason: "invalid dimensions"}
	}

	var b strings.Builder
	for i, c := range coords {
		if c.Dim() != dim {
			return "", &CoordinateFormatError{Text: formatRaw(coords), Reason: "invalid dimensions"}
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		for j, v := range c {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(v, 'f', precision, 64))
		}
	}

	return b.String(), nil
}

// formatRaw renders coords at full precision for error messages.
func formatRaw(coords geo.Sequence) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		values := make([]string, len(c))
		for j, v := range c {
			values[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		parts[i] = strings.Join(values, ",")
	}
	return strings.Join(parts, " ")
}

// handleInvalidGeometry logs a decode problem and, in strict mode, turns it
// into a GeometryParseError carrying the offending element.
func handleInvalidGeometry(err error, el *etree.Element, strict bool) error {
	text := serialize(el)
	log.Error().
		Err(err).
		Str("element", text).
		Msg("Invalid coordinates")

	if strict {
		return &GeometryParseError{Element: text, Cause: err}
	}
	return nil
}

// decodeCoordinates reads the coordinates child of el. A missing child or
// unparsable text in non-strict mode yields an empty sequence.
func decodeCoordinates(ns string, el *etree.Element, strict bool) (geo.Sequence, error) {
	coordsEl := el.SelectElement(qualify(ns, "coordinates"))
	if coordsEl == nil {
		return nil, nil
	}

	seq, err := Parse(coordsEl.Text())
	if err != nil {
		return nil, handleInvalidGeometry(err, el, strict)
	}
	return seq, nil
}

// encodeCoordinates appends a coordinates child holding coords.
func encodeCoordinates(ns string, el *etree.Element, coords geo.Sequence, precision int) error {
	text, err := Format(coords, precision)
	if err != nil {
		return err
	}
	el.CreateElement(qualify(ns, "coordinates")).SetText(text)
	return nil
}
