package geo

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// FeatureCollection represents a collection of geographic features.
// It marshals to and from standard GeoJSON.
type FeatureCollection struct {
	Features []Feature
}

// Feature represents a single geometry with its id and properties.
type Feature struct {
	Properties map[string]interface{}
	Geometry   Geometry
	ID         string
}

// MarshalJSON encodes the collection as a GeoJSON FeatureCollection.
// Features without a geometry are left out.
func (fc FeatureCollection) MarshalJSON() ([]byte, error) {
	out := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(fc.Features))}
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		t, err := ToGeom(f.Geometry)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		out.Features = append(out.Features, &geojson.Feature{
			ID:         f.ID,
			Geometry:   t,
			Properties: f.Properties,
		})
	}
	return json.Marshal(&out)
}

// UnmarshalJSON accepts a FeatureCollection, a single Feature or a bare
// geometry object.
func (fc *FeatureCollection) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return errors.Wrap(err, "geojson")
	}

	var features []*geojson.Feature
	switch probe.Type {
	case "FeatureCollection":
		var gfc geojson.FeatureCollection
		if err := json.Unmarshal(data, &gfc); err != nil {
			return errors.Wrap(err, "geojson feature collection")
		}
		features = gfc.Features
	case "Feature":
		var gf geojson.Feature
		if err := json.Unmarshal(data, &gf); err != nil {
			return errors.Wrap(err, "geojson feature")
		}
		features = []*geojson.Feature{&gf}
	default:
		var gf geojson.Feature
		if err := geojson.Unmarshal(data, &gf.Geometry); err != nil {
			return errors.Wrap(err, "geojson geometry")
		}
		features = []*geojson.Feature{&gf}
	}

	fc.Features = make([]Feature, 0, len(features))
	for i, gf := range features {
		f := Feature{ID: gf.ID, Properties: gf.Properties}
		if gf.Geometry != nil {
			g, err := FromGeom(gf.Geometry)
			if err != nil {
				return errors.Wrapf(err, "feature %d", i)
			}
			f.Geometry = g
		}
		fc.Features = append(fc.Features, f)
	}

	return nil
}
