// Package geometry bridges GeoJSON style nested coordinate arrays and the
// orb vector model, and renders geometries as GeoRSS positions.
package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Type is the GeoJSON geometry type name.
type Type string

// Geometry variants.
const (
	TypePoint              Type = "Point"
	TypeLineString         Type = "LineString"
	TypePolygon            Type = "Polygon"
	TypeMultiPoint         Type = "MultiPoint"
	TypeMultiLineString    Type = "MultiLineString"
	TypeMultiPolygon       Type = "MultiPolygon"
	TypeGeometryCollection Type = "GeometryCollection"
)

// Geometry is a tagged orb geometry. Type always names the concrete orb
// type held in Geom; Validate enforces it.
type Geometry struct {
	Type Type
	Geom orb.Geometry
}

// FromOrb tags an orb geometry with its GeoJSON type. orb.Ring and
// orb.Bound are rejected, they have no GeoJSON encoding of their own.
func FromOrb(g orb.Geometry) (Geometry, error) {
	if g == nil {
		return Geometry{}, mismatch("", g)
	}

	out := Geometry{Type: Type(g.GeoJSONType()), Geom: g}
	if err := out.Validate(); err != nil {
		return Geometry{}, err
	}

	return out, nil
}

// Validate checks the discriminator against the wrapped value, recursing
// into collections.
func (g Geometry) Validate() error {
	c, ok := codecs[g.Type]
	if !ok {
		return fmt.Errorf("%w: unknown type %q", ErrUnsupportedOperation, g.Type)
	}
	if !c.holds(g.Geom) {
		return mismatch(g.Type, g.Geom)
	}

	if col, ok := g.Geom.(orb.Collection); ok {
		for i, member := range col {
			if _, err := FromOrb(member); err != nil {
				return fmt.Errorf("member %d: %w", i, err)
			}
		}
	}

	return nil
}

// MarshalJSON writes a GeoJSON geometry object.
func (g Geometry) MarshalJSON() ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return geojson.NewGeometry(g.Geom).MarshalJSON()
}

// UnmarshalJSON reads a GeoJSON geometry object.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	gj, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}

	parsed, err := FromOrb(gj.Geometry())
	if err != nil {
		return err
	}

	*g = parsed
	return nil
}
