package geometry

import (
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// GeoRSSNamespace is the GeoRSS-Simple XML namespace.
const GeoRSSNamespace = "http://www.georss.org/georss"

// Kind is the GeoRSS-Simple element a Position maps to.
type Kind string

// GeoRSS-Simple position kinds.
const (
	KindPoint   Kind = "point"
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
)

// LatLon is one GeoRSS coordinate, latitude first.
type LatLon struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Position is a GeoRSS-Simple shape.
type Position struct {
	Kind   Kind     `json:"kind" yaml:"kind"`
	Coords []LatLon `json:"coords" yaml:"coords"`
}

// GeoRSSPositions flattens the geometry into GeoRSS shapes. Polygons keep
// only their exterior ring; multi geometries and collections yield one
// shape per member. The sequence is recomputed on every range.
func (g Geometry) GeoRSSPositions() (iter.Seq[Position], error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	c := codecs[g.Type]
	return func(yield func(Position) bool) {
		c.positions(g.Geom, yield)
	}, nil
}

// String renders the GeoRSS-Simple text "lat lon lat lon ...".
func (p Position) String() string {
	parts := make([]string, 0, 2*len(p.Coords))
	for _, c := range p.Coords {
		parts = append(parts,
			strconv.FormatFloat(c.Lat, 'f', -1, 64),
			strconv.FormatFloat(c.Lon, 'f', -1, 64))
	}
	return strings.Join(parts, " ")
}

// MarshalXML writes the position as a georss:<kind> element.
func (p Position) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "georss:" + string(p.Kind)}}
	return e.EncodeElement(p.String(), start)
}

// EncodeGeoRSS writes the positions wrapped in a georss:where element that
// declares the namespace.
func EncodeGeoRSS(w io.Writer, positions iter.Seq[Position]) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "georss:where"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns:georss"}, Value: GeoRSSNamespace}},
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	for p := range positions {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode %s: %w", p.Kind, err)
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}

	return enc.Flush()
}

func newPosition(kind Kind, pts ...orb.Point) Position {
	coords := make([]LatLon, len(pts))
	for i, p := range pts {
		coords[i] = LatLon{Lat: p.Lat(), Lon: p.Lon()}
	}
	return Position{Kind: kind, Coords: coords}
}

// polygonPosition yields the exterior ring; empty polygons yield nothing.
func polygonPosition(p orb.Polygon, yield func(Position) bool) bool {
	if len(p) == 0 {
		return true
	}
	return yield(newPosition(KindPolygon, p[0]...))
}
