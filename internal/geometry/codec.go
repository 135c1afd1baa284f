package geometry

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/paulmach/orb"
)

// codec binds one geometry variant to its decoder, encoder and GeoRSS walk.
type codec struct {
	holds     func(orb.Geometry) bool
	decode    func(t Type, path string, v reflect.Value) (orb.Geometry, error)
	encode    func(orb.Geometry) (any, error)
	positions func(orb.Geometry, func(Position) bool) bool
}

// codecs is filled once in init and only read afterwards.
var codecs map[Type]codec

func init() {
	codecs = map[Type]codec{
		TypePoint: {
			holds: isA[orb.Point],
			decode: func(t Type, path string, v reflect.Value) (orb.Geometry, error) {
				return decodePosition(t, path, v)
			},
			encode: func(g orb.Geometry) (any, error) {
				return encodePoint(g.(orb.Point)), nil
			},
			positions: func(g orb.Geometry, yield func(Position) bool) bool {
				return yield(newPosition(KindPoint, g.(orb.Point)))
			},
		},
		TypeLineString: {
			holds: isA[orb.LineString],
			decode: func(t Type, path string, v reflect.Value) (orb.Geometry, error) {
				pts, err := decodePositions(t, path, v)
				return orb.LineString(pts), err
			},
			encode: func(g orb.Geometry) (any, error) {
				return encodePoints(g.(orb.LineString)), nil
			},
			positions: func(g orb.Geometry, yield func(Position) bool) bool {
				return yield(newPosition(KindLine, g.(orb.LineString)...))
			},
		},
		TypePolygon: {
			holds:  isA[orb.Polygon],
			decode: decodePolygon,
			encode: func(g orb.Geometry) (any, error) {
				return encodePolygon(g.(orb.Polygon)), nil
			},
			positions: func(g orb.Geometry, yield func(Position) bool) bool {
				return polygonPosition(g.(orb.Polygon), yield)
			},
		},
		TypeMultiPoint: {
			holds: isA[orb.MultiPoint],
			decode: func(t Type, path string, v reflect.Value) (orb.Geometry, error) {
				pts, err := decodePositions(t, path, v)
				return orb.MultiPoint(pts), err
			},
			encode: func(g orb.Geometry) (any, error) {
				return encodePoints(g.(orb.MultiPoint)), nil
			},
			positions: func(g orb.Geometry, yield func(Position) bool) bool {
				for _, p := range g.(orb.MultiPoint) {
					if !yield(newPosition(KindPoint, p)) {
						return false
					}
				}
				return true
			},
		},
		TypeMultiLineString: {
			holds: isA[orb.MultiLineString],
			decode: func(t Type, path string, v reflect.Value) (orb.Geometry, error) {
				items, err := elems(t, path, v)
				if err != nil {
					return nil, err
				}
				out := make(orb.MultiLineString, len(items))
				for i, item := range items {
					pts, err := decodePositions(t, index(path, i), item)
					if err != nil {
						return nil, err
					}
					out[i] = pts
				}
				return out, nil
			},
			encode: func(g orb.Geometry) (any, error) {
				mls := g.(orb.MultiLineString)
				out := make([][][]float64, len(mls))
				for i, ls := range mls {
					out[i] = encodePoints(ls)
				}
				return out, nil
			},
			positions: func(g orb.Geometry, yield func(Position) bool) bool {
				for _, ls := range g.(orb.MultiLineString) {
					if !yield(newPosition(KindLine, ls...)) {
						return false
					}
				}
				return true
			},
		},
		TypeMultiPolygon: {
			holds: isA[orb.MultiPolygon],
			decode: func(t Type, path string, v reflect.Value) (orb.Geometry, error) {
				items, err := elems(t, path, v)
				if err != nil {
					return nil, err
				}
				out := make(orb.MultiPolygon, len(items))
				for i, item := range items {
					p, err := decodePolygon(t, index(path, i), item)
					if err != nil {
						return nil, err
					}
					out[i] = p.(orb.Polygon)
				}
				return out, nil
			},
			encode: func(g orb.Geometry) (any, error) {
				mp := g.(orb.MultiPolygon)
				out := make([][][][]float64, len(mp))
				for i, p := range mp {
					out[i] = encodePolygon(p)
				}
				return out, nil
			},
			positions: func(g orb.Geometry, yield func(Position) bool) bool {
				for _, p := range g.(orb.MultiPolygon) {
					if !polygonPosition(p, yield) {
						return false
					}
				}
				return true
			},
		},
		TypeGeometryCollection: {
			holds:  isA[orb.Collection],
			decode: decodeCollection,
			encode: func(g orb.Geometry) (any, error) {
				col := g.(orb.Collection)
				out := make([]map[string]any, len(col))
				for i, member := range col {
					m, err := Geometry{Type: Type(member.GeoJSONType()), Geom: member}.ToJSONMap()
					if err != nil {
						return nil, fmt.Errorf("member %d: %w", i, err)
					}
					out[i] = m
				}
				return out, nil
			},
			positions: func(g orb.Geometry, yield func(Position) bool) bool {
				for _, member := range g.(orb.Collection) {
					c := codecs[Type(member.GeoJSONType())]
					if !c.positions(member, yield) {
						return false
					}
				}
				return true
			},
		},
	}
}

// Decode builds a geometry of the named type from nested coordinate arrays.
// Arrays may be []any as produced by encoding/json or typed slices such as
// [][]float64. For GeometryCollection the value is the list of member
// objects, each a map with "type" and "coordinates" (or "geometries").
func Decode(typ string, coordinates any) (Geometry, error) {
	t := Type(typ)
	c, ok := codecs[t]
	if !ok {
		return Geometry{}, &DecodeError{Type: t, Path: "type", Reason: "unknown geometry type"}
	}

	root := "coordinates"
	if t == TypeGeometryCollection {
		root = "geometries"
	}

	g, err := c.decode(t, root, reflect.ValueOf(coordinates))
	if err != nil {
		return Geometry{}, err
	}

	return Geometry{Type: t, Geom: g}, nil
}

// DecodeMap decodes a GeoJSON geometry object held in a generic map.
func DecodeMap(m map[string]any) (Geometry, error) {
	typ, ok := m["type"].(string)
	if !ok {
		return Geometry{}, &DecodeError{Path: "type", Reason: "missing geometry type"}
	}

	if Type(typ) == TypeGeometryCollection {
		return Decode(typ, m["geometries"])
	}

	return Decode(typ, m["coordinates"])
}

// ToJSONMap is the structural inverse of DecodeMap. Coordinates come out as
// typed float64 slices nested as deep as the type requires.
func (g Geometry) ToJSONMap() (map[string]any, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	body, err := codecs[g.Type].encode(g.Geom)
	if err != nil {
		return nil, err
	}

	key := "coordinates"
	if g.Type == TypeGeometryCollection {
		key = "geometries"
	}

	return map[string]any{"type": string(g.Type), key: body}, nil
}

func isA[T orb.Geometry](g orb.Geometry) bool {
	_, ok := g.(T)
	return ok
}

func decodePolygon(t Type, path string, v reflect.Value) (orb.Geometry, error) {
	rings, err := elems(t, path, v)
	if err != nil {
		return nil, err
	}

	out := make(orb.Polygon, len(rings))
	for i, ring := range rings {
		pts, err := decodePositions(t, index(path, i), ring)
		if err != nil {
			return nil, err
		}
		out[i] = pts
	}

	return out, nil
}

func decodeCollection(t Type, path string, v reflect.Value) (orb.Geometry, error) {
	items, err := elems(t, path, v)
	if err != nil {
		return nil, err
	}

	out := make(orb.Collection, len(items))
	for i, item := range items {
		var (
			member Geometry
			err    error
		)

		iv := indirect(item)
		if !iv.IsValid() {
			return nil, &DecodeError{Type: t, Path: index(path, i), Reason: "null member"}
		}

		switch m := iv.Interface().(type) {
		case map[string]any:
			member, err = DecodeMap(m)
		case Geometry:
			member, err = m, m.Validate()
		default:
			return nil, &DecodeError{Type: t, Path: index(path, i), Reason: fmt.Sprintf("expected geometry object, got %T", m)}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", index(path, i), err)
		}

		out[i] = member.Geom
	}

	return out, nil
}

func decodePositions(t Type, path string, v reflect.Value) ([]orb.Point, error) {
	items, err := elems(t, path, v)
	if err != nil {
		return nil, err
	}

	out := make([]orb.Point, len(items))
	for i, item := range items {
		p, err := decodePosition(t, index(path, i), item)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}

	return out, nil
}

// decodePosition reads [lon, lat, ...]; extra ordinates are ignored.
func decodePosition(t Type, path string, v reflect.Value) (orb.Point, error) {
	items, err := elems(t, path, v)
	if err != nil {
		return orb.Point{}, err
	}
	if len(items) < 2 {
		return orb.Point{}, &DecodeError{Type: t, Path: path, Reason: fmt.Sprintf("position needs at least two numbers, got %d", len(items))}
	}

	var p orb.Point
	for i := range p {
		n, ok := number(items[i])
		if !ok {
			reason := "not a number"
			if isList(items[i]) {
				reason = "nesting too deep"
			}
			return orb.Point{}, &DecodeError{Type: t, Path: index(path, i), Reason: reason}
		}
		p[i] = n
	}

	return p, nil
}

func elems(t Type, path string, v reflect.Value) ([]reflect.Value, error) {
	v = indirect(v)
	if !isList(v) {
		reason := "expected array"
		if _, ok := number(v); ok {
			reason = "nesting too shallow"
		}
		return nil, &DecodeError{Type: t, Path: path, Reason: reason}
	}

	out := make([]reflect.Value, v.Len())
	for i := range out {
		out[i] = v.Index(i)
	}

	return out, nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isList(v reflect.Value) bool {
	v = indirect(v)
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

var jsonNumberType = reflect.TypeOf(json.Number(""))

func number(v reflect.Value) (float64, bool) {
	v = indirect(v)
	if !v.IsValid() {
		return 0, false
	}

	if v.Type() == jsonNumberType {
		f, err := json.Number(v.String()).Float64()
		return f, err == nil
	}

	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	}

	return 0, false
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func encodePoint(p orb.Point) []float64 {
	return []float64{p[0], p[1]}
}

func encodePoints(pts []orb.Point) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = encodePoint(p)
	}
	return out
}

func encodePolygon(p orb.Polygon) [][][]float64 {
	out := make([][][]float64, len(p))
	for i, ring := range p {
		out[i] = encodePoints(ring)
	}
	return out
}
