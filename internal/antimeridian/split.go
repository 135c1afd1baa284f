package antimeridian

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

const seam = 180.0

// UnwrapAndSplit normalizes longitudes into [-180, 180] and splits every
// polygon that crosses the antimeridian into the half touching -180
// followed by the half touching 180. Each split ring starts on its seam
// edge. MULTIPOLYGON members are split individually and
// flattened into one MULTIPOLYGON.
//
// Input that needs neither shifting nor splitting is returned unchanged.
func UnwrapAndSplit(text string) (string, error) {
	g, err := parse(text)
	if err != nil {
		return "", err
	}

	shifted := normalizeLongitudes(g)

	switch g := g.(type) {
	case *geom.Polygon:
		parts, split, err := splitPolygon(g)
		if err != nil {
			return "", err
		}
		if !split {
			if !shifted {
				return text, nil
			}
			return marshal(g)
		}
		if len(parts) == 1 {
			return marshal(parts[0])
		}
		return marshalParts(g.Layout(), parts)

	case *geom.MultiPolygon:
		var (
			all   []*geom.Polygon
			split bool
		)
		for i := 0; i < g.NumPolygons(); i++ {
			parts, ok, err := splitPolygon(g.Polygon(i))
			if err != nil {
				return "", fmt.Errorf("polygon %d: %w", i, err)
			}
			split = split || ok
			all = append(all, parts...)
		}
		if !split && !shifted {
			return text, nil
		}
		return marshalParts(g.Layout(), all)
	}

	if !shifted {
		return text, nil
	}
	return marshal(g)
}

// MultiPolygonToPolygons returns one POLYGON WKT per member of a
// MULTIPOLYGON. A POLYGON is returned as is.
func MultiPolygonToPolygons(text string) ([]string, error) {
	g, err := parse(text)
	if err != nil {
		return nil, err
	}

	switch g := g.(type) {
	case *geom.Polygon:
		return []string{text}, nil

	case *geom.MultiPolygon:
		out := make([]string, 0, g.NumPolygons())
		for i := 0; i < g.NumPolygons(); i++ {
			s, err := marshal(g.Polygon(i))
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: got %T", ErrNotPolygonal, g)
}

func parse(text string) (geom.T, error) {
	g, err := wkt.Unmarshal(Normalize(text))
	if err != nil {
		return nil, &ParseError{Input: text, Err: err}
	}
	return g, nil
}

func marshal(g geom.T) (string, error) {
	s, err := wkt.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode WKT: %w", err)
	}
	return s, nil
}

func marshalParts(layout geom.Layout, parts []*geom.Polygon) (string, error) {
	mp := geom.NewMultiPolygon(layout)
	for _, p := range parts {
		if err := mp.Push(p); err != nil {
			return "", fmt.Errorf("build multipolygon: %w", err)
		}
	}
	return marshal(mp)
}

// normalizeLongitudes shifts x > 180 by -360 and x < -180 by +360 in place
// and reports whether anything moved.
func normalizeLongitudes(g geom.T) bool {
	if gc, ok := g.(*geom.GeometryCollection); ok {
		shifted := false
		for _, member := range gc.Geoms() {
			shifted = normalizeLongitudes(member) || shifted
		}
		return shifted
	}

	flat := g.FlatCoords()
	stride := g.Stride()
	if stride == 0 {
		return false
	}

	shifted := false
	for i := 0; i < len(flat); i += stride {
		switch x := flat[i]; {
		case x > seam:
			flat[i] = x - 360
			shifted = true
		case x < -seam:
			flat[i] = x + 360
			shifted = true
		}
	}

	return shifted
}

// splitPolygon cuts p at the seam if its exterior ring crosses it. The
// returned bool is false when p was left alone.
func splitPolygon(p *geom.Polygon) ([]*geom.Polygon, bool, error) {
	if p.NumLinearRings() == 0 {
		return []*geom.Polygon{p}, false, nil
	}

	exterior := openRing(p.LinearRing(0).Coords())
	if !crossesSeam(exterior) {
		return []*geom.Polygon{p}, false, nil
	}

	exterior, err := unwrapRing(exterior)
	if err != nil {
		return nil, false, err
	}

	minX, maxX := xRange(exterior)
	cut, shift := seam, -360.0
	if maxX <= seam && minX < -seam {
		cut, shift = -seam, 360.0
	}
	center := (minX + maxX) / 2

	rings := [][]geom.Coord{exterior}
	for i := 1; i < p.NumLinearRings(); i++ {
		hole, err := unwrapRing(openRing(p.LinearRing(i).Coords()))
		if err != nil {
			return nil, false, err
		}
		rings = append(rings, alignRing(hole, center))
	}

	type side struct {
		keep  func(float64) bool
		shift float64
	}

	// the half touching -180 always comes first
	sides := []side{
		{func(x float64) bool { return x >= cut }, shift},
		{func(x float64) bool { return x <= cut }, 0},
	}
	if cut < 0 {
		sides = []side{
			{func(x float64) bool { return x >= cut }, 0},
			{func(x float64) bool { return x <= cut }, shift},
		}
	}

	var parts []*geom.Polygon
	for _, side := range sides {
		part, err := clipPolygon(p.Layout(), rings, cut, side.keep, side.shift)
		if err != nil {
			return nil, false, err
		}
		if part != nil {
			parts = append(parts, part)
		}
	}

	return parts, true, nil
}

// clipPolygon keeps the side of every ring selected by keep. Holes that
// vanish are dropped; a vanished exterior drops the whole part.
func clipPolygon(layout geom.Layout, rings [][]geom.Coord, cut float64, keep func(float64) bool, shift float64) (*geom.Polygon, error) {
	var out [][]geom.Coord
	for i, ring := range rings {
		clipped := clipRing(ring, cut, keep)
		if len(clipped) < 3 {
			if i == 0 {
				return nil, nil
			}
			continue
		}

		clipped = rotateToSeam(clipped, cut)
		for _, c := range clipped {
			c[0] += shift
		}
		out = append(out, closeRing(clipped))
	}

	p, err := geom.NewPolygon(layout).SetCoords(out)
	if err != nil {
		return nil, fmt.Errorf("build polygon: %w", err)
	}
	return p, nil
}

// clipRing is one Sutherland-Hodgman pass against the vertical line x = cut.
func clipRing(ring []geom.Coord, cut float64, keep func(float64) bool) []geom.Coord {
	var out []geom.Coord
	prev := ring[len(ring)-1]
	for _, cur := range ring {
		switch {
		case keep(cur[0]):
			if !keep(prev[0]) {
				out = appendDistinct(out, intersect(prev, cur, cut))
			}
			out = appendDistinct(out, cloneCoord(cur))
		case keep(prev[0]):
			out = appendDistinct(out, intersect(prev, cur, cut))
		}
		prev = cur
	}

	if len(out) > 1 && equalCoord(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}

	return out
}

// intersect interpolates every ordinate of segment a-b at x = cut.
func intersect(a, b geom.Coord, cut float64) geom.Coord {
	t := (cut - a[0]) / (b[0] - a[0])
	c := make(geom.Coord, len(a))
	c[0] = cut
	for i := 1; i < len(a); i++ {
		if a[i] == b[i] {
			c[i] = a[i]
			continue
		}
		c[i] = a[i] + t*(b[i]-a[i])
	}
	return c
}

// rotateToSeam makes the ring start on its first edge lying on x = cut.
func rotateToSeam(ring []geom.Coord, cut float64) []geom.Coord {
	n := len(ring)
	for i := 0; i < n; i++ {
		if ring[i][0] == cut && ring[(i+1)%n][0] == cut {
			return append(ring[i:len(ring):len(ring)], ring[:i]...)
		}
	}
	return ring
}

func crossesSeam(ring []geom.Coord) bool {
	for i := 1; i < len(ring); i++ {
		if math.Abs(ring[i][0]-ring[i-1][0]) > seam {
			return true
		}
	}
	return len(ring) > 1 && math.Abs(ring[0][0]-ring[len(ring)-1][0]) > seam
}

// unwrapRing rewrites longitudes so consecutive vertices never jump by more
// than 180°. An open ring whose closing edge still jumps winds a pole.
func unwrapRing(ring []geom.Coord) ([]geom.Coord, error) {
	out := make([]geom.Coord, len(ring))
	offset := 0.0
	for i, c := range ring {
		out[i] = cloneCoord(c)
		if i > 0 {
			switch d := c[0] - ring[i-1][0]; {
			case d > seam:
				offset -= 360
			case d < -seam:
				offset += 360
			}
		}
		out[i][0] += offset
	}

	if n := len(out); n > 1 && math.Abs(out[0][0]-out[n-1][0]) > seam {
		return nil, ErrPoleRing
	}

	return out, nil
}

// alignRing shifts a ring by whole turns so its middle is nearest center.
func alignRing(ring []geom.Coord, center float64) []geom.Coord {
	minX, maxX := xRange(ring)
	turns := math.Round((center - (minX+maxX)/2) / 360)
	if turns != 0 {
		for _, c := range ring {
			c[0] += turns * 360
		}
	}
	return ring
}

func xRange(ring []geom.Coord) (minX, maxX float64) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	for _, c := range ring {
		minX = math.Min(minX, c[0])
		maxX = math.Max(maxX, c[0])
	}
	return minX, maxX
}

// openRing copies the ring without its closing vertex.
func openRing(ring []geom.Coord) []geom.Coord {
	if n := len(ring); n > 1 && equalCoord(ring[0], ring[n-1]) {
		ring = ring[:n-1]
	}
	out := make([]geom.Coord, len(ring))
	for i, c := range ring {
		out[i] = cloneCoord(c)
	}
	return out
}

func closeRing(ring []geom.Coord) []geom.Coord {
	return append(ring, cloneCoord(ring[0]))
}

func appendDistinct(ring []geom.Coord, c geom.Coord) []geom.Coord {
	if n := len(ring); n > 0 && equalCoord(ring[n-1], c) {
		return ring
	}
	return append(ring, c)
}

func cloneCoord(c geom.Coord) geom.Coord {
	return append(geom.Coord(nil), c...)
}

func equalCoord(a, b geom.Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
