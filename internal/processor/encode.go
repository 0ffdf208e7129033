package processor

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/xml"

	"github.com/woozymasta/kmlgeom/internal/geo"
	"github.com/woozymasta/kmlgeom/internal/kml"
)

// EncodeOptions control how feature collections are written as KML.
type EncodeOptions struct {
	Hints        kml.Hints
	Namespace    string
	DocumentName string
	// Precision is the number of decimals; negative selects kml.DefaultPrecision.
	Precision int
	Verbosity kml.Verbosity
}

// DefaultEncodeOptions returns Normal verbosity at the default precision.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Precision: kml.DefaultPrecision, Verbosity: kml.Normal}
}

// EncodeDocument builds a kml > Document > Placemark tree with one placemark
// per feature. Features without a geometry are skipped.
func EncodeDocument(fc geo.FeatureCollection, opts EncodeOptions) (*etree.Document, error) {
	ns := opts.Namespace

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(qualify(ns, "kml"))
	if ns == "" {
		root.CreateAttr("xmlns", kml.Namespace)
	} else {
		root.CreateAttr("xmlns:"+ns, kml.Namespace)
	}

	document := root.CreateElement(qualify(ns, "Document"))
	if opts.DocumentName != "" {
		document.CreateElement(qualify(ns, "name")).SetText(opts.DocumentName)
	}

	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}

		w, err := kml.Create(f.Geometry, kml.WithNamespace(ns), kml.WithHints(opts.Hints))
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		el, err := w.Encode(opts.Precision, opts.Verbosity)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}

		pm := document.CreateElement(qualify(ns, "Placemark"))
		if f.ID != "" {
			pm.CreateAttr("id", f.ID)
		}
		for _, key := range []string{"name", "description"} {
			if v, ok := f.Properties[key]; ok && v != nil {
				pm.CreateElement(qualify(ns, key)).SetText(fmt.Sprint(v))
			}
		}
		pm.AddChild(el)
	}

	return doc, nil
}

// WriteDocument writes doc indented, or minified when minified is set.
func WriteDocument(w io.Writer, doc *etree.Document, minified bool) error {
	if !minified {
		doc.Indent(2)
		_, err := doc.WriteTo(w)
		return errors.Wrap(err, "write kml")
	}

	text, err := doc.WriteToString()
	if err != nil {
		return errors.Wrap(err, "serialize kml")
	}

	m := minify.New()
	m.AddFunc("text/xml", xml.Minify)
	if err := m.Minify("text/xml", w, strings.NewReader(text)); err != nil {
		return errors.Wrap(err, "minify kml")
	}
	return nil
}
