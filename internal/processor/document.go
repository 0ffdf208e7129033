// Package processor converts between KML documents and GeoJSON feature collections.
package processor

import (
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/kmlgeom/internal/geo"
	"github.com/woozymasta/kmlgeom/internal/kml"
)

// ErrEmptyDocument is returned for input without a root element.
var ErrEmptyDocument = errors.New("processor: document has no root element")

// DecodeOptions control how KML documents are read.
type DecodeOptions struct {
	// Strict makes invalid coordinates fatal instead of skipping the geometry.
	Strict bool
}

func qualify(ns, tag string) string {
	if ns == "" {
		return tag
	}
	return ns + ":" + tag
}

// DecodeDocument reads a KML document and returns one feature per placemark
// holding a non-empty geometry. A document whose root is a geometry element
// yields a single feature.
func DecodeDocument(r io.Reader, opts DecodeOptions) (geo.FeatureCollection, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return geo.FeatureCollection{}, errors.Wrap(err, "parse kml")
	}
	root := doc.Root()
	if root == nil {
		return geo.FeatureCollection{}, ErrEmptyDocument
	}

	fc := geo.FeatureCollection{Features: []geo.Feature{}}

	if kml.IsGeometryTag(root.Tag) {
		w, err := kml.Decode(root.Space, root, opts.Strict)
		if err != nil {
			return geo.FeatureCollection{}, err
		}
		if !w.IsEmpty() {
			fc.Features = append(fc.Features, geo.Feature{ID: w.ID(), Geometry: w.Geometry()})
		}
		return fc, nil
	}

	var placemarks []*etree.Element
	collectPlacemarks(root, &placemarks)

	for i, pm := range placemarks {
		f, ok, err := decodePlacemark(pm, opts.Strict)
		if err != nil {
			return geo.FeatureCollection{}, errors.Wrapf(err, "placemark %d", i)
		}
		if !ok {
			log.Debug().
				Int("placemark", i).
				Str("id", pm.SelectAttrValue("id", "")).
				Msg("Placemark without geometry skipped")
			continue
		}
		fc.Features = append(fc.Features, f)
	}

	log.Debug().
		Int("placemarks", len(placemarks)).
		Int("features", len(fc.Features)).
		Msg("KML document decoded")

	return fc, nil
}

// collectPlacemarks gathers Placemark elements in document order at any depth.
func collectPlacemarks(el *etree.Element, out *[]*etree.Element) {
	for _, child := range el.ChildElements() {
		if child.Tag == "Placemark" {
			*out = append(*out, child)
			continue
		}
		collectPlacemarks(child, out)
	}
}

func decodePlacemark(pm *etree.Element, strict bool) (geo.Feature, bool, error) {
	var geomEl *etree.Element
	for _, child := range pm.ChildElements() {
		if kml.IsGeometryTag(child.Tag) {
			geomEl = child
			break
		}
	}
	if geomEl == nil {
		return geo.Feature{}, false, nil
	}

	w, err := kml.Decode(geomEl.Space, geomEl, strict)
	if err != nil {
		return geo.Feature{}, false, err
	}
	if w.IsEmpty() {
		return geo.Feature{}, false, nil
	}

	f := geo.Feature{
		ID:       pm.SelectAttrValue("id", ""),
		Geometry: w.Geometry(),
	}
	if f.ID == "" {
		f.ID = w.ID()
	}

	props := make(map[string]interface{})
	for _, key := range []string{"name", "description"} {
		if el := pm.SelectElement(qualify(pm.Space, key)); el != nil {
			if text := strings.TrimSpace(el.Text()); text != "" {
				props[key] = text
			}
		}
	}
	if len(props) > 0 {
		f.Properties = props
	}

	return f, true, nil
}
