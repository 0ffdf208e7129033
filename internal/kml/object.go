package kml

import (
	"sort"

	"github.com/beevik/etree"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

// Namespace is the KML 2.2 namespace URI.
const Namespace = "http://www.opengis.net/kml/2.2"

// qualify prefixes tag with the namespace prefix ns, if any. Lookups with an
// empty prefix match children in any namespace.
func qualify(ns, tag string) string {
	if ns == "" {
		return tag
	}
	return ns + ":" + tag
}

// object carries the identity and namespace context shared by all wrappers.
type object struct {
	nameSpaces map[string]string
	ns         string
	id         string
	targetID   string
}

// Namespace returns the namespace prefix used for the wrapper's elements.
func (o *object) Namespace() string { return o.ns }

// ID returns the id attribute.
func (o *object) ID() string { return o.id }

// TargetID returns the targetId attribute.
func (o *object) TargetID() string { return o.targetID }

// NameSpaces returns a copy of the prefix to URI declarations.
func (o *object) NameSpaces() map[string]string {
	out := make(map[string]string, len(o.nameSpaces))
	for k, v := range o.nameSpaces {
		out[k] = v
	}
	return out
}

// newElement creates the wrapper's root element. Only top-level elements
// declare namespaces.
func (o *object) newElement(tag string, nested bool) *etree.Element {
	el := etree.NewElement(qualify(o.ns, tag))

	if !nested && len(o.nameSpaces) > 0 {
		prefixes := make([]string, 0, len(o.nameSpaces))
		for prefix := range o.nameSpaces {
			prefixes = append(prefixes, prefix)
		}
		sort.Strings(prefixes)
		for _, prefix := range prefixes {
			el.CreateAttr(qualify("xmlns", prefix), o.nameSpaces[prefix])
		}
	}

	if o.id != "" {
		el.CreateAttr("id", o.id)
	}
	if o.targetID != "" {
		el.CreateAttr("targetId", o.targetID)
	}

	return el
}

func decodeObject(ns string, el *etree.Element) object {
	return object{
		ns:       ns,
		id:       el.SelectAttrValue("id", ""),
		targetID: el.SelectAttrValue("targetId", ""),
	}
}

// serialize renders el as XML text for error messages.
func serialize(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return "<" + el.FullTag() + ">"
	}
	return s
}

// Option configures a wrapper at construction time.
type Option func(*settings)

type settings struct {
	geometry geo.Geometry
	object
	coords    geo.Sequence
	hints     Hints
	hasCoords bool
	nested    bool
}

func newSettings(opts []Option) (settings, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.geometry != nil && s.hasCoords {
		return s, ErrMutuallyExclusive
	}
	return s, nil
}

// WithNamespace sets the namespace prefix of the wrapper's elements.
func WithNamespace(ns string) Option {
	return func(s *settings) { s.ns = ns }
}

// WithNameSpaces sets prefix to URI declarations emitted on the top-level element.
func WithNameSpaces(nameSpaces map[string]string) Option {
	return func(s *settings) {
		s.nameSpaces = make(map[string]string, len(nameSpaces))
		for k, v := range nameSpaces {
			s.nameSpaces[k] = v
		}
	}
}

// WithID sets the id attribute.
func WithID(id string) Option {
	return func(s *settings) { s.id = id }
}

// WithTargetID sets the targetId attribute.
func WithTargetID(id string) Option {
	return func(s *settings) { s.targetID = id }
}

// WithExtrude sets the ground-clamp hint.
func WithExtrude(v bool) Option {
	return func(s *settings) { s.hints.Extrude = &v }
}

// WithTessellate sets the terrain-follow hint.
func WithTessellate(v bool) Option {
	return func(s *settings) { s.hints.Tessellate = &v }
}

// WithAltitudeMode sets how altitudes are interpreted.
func WithAltitudeMode(m AltitudeMode) Option {
	return func(s *settings) { s.hints.AltitudeMode = &m }
}

// WithHints replaces all rendering hints at once.
func WithHints(h Hints) Option {
	return func(s *settings) { s.hints = h.clone() }
}

// WithGeometry builds the wrapper from a geometry value.
func WithGeometry(g geo.Geometry) Option {
	return func(s *settings) { s.geometry = g }
}

// WithCoordinates builds a Point, LineString or LinearRing wrapper from raw
// coordinate tuples. It cannot be combined with WithGeometry.
func WithCoordinates(coords geo.Sequence) Option {
	return func(s *settings) {
		s.coords = coords.Clone()
		s.hasCoords = true
	}
}

// nestedMember marks a wrapper that lives inside a Polygon or MultiGeometry:
// it never carries rendering hints nor namespace declarations.
func nestedMember() Option {
	return func(s *settings) {
		s.nested = true
		s.hints = Hints{}
	}
}
