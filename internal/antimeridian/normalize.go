// Package antimeridian rewrites WKT so that polygons crossing the ±180°
// meridian become non-crossing parts, and repairs MULTIPOINT grouping.
//
// All functions take and return WKT text; nothing is retained between calls.
package antimeridian

import (
	"regexp"
	"strings"
)

var (
	multiPointRegex = regexp.MustCompile(`(?i)\bMULTIPOINT\b`)

	// a parenthesized point inside a MULTIPOINT body
	pointGroupRegex = regexp.MustCompile(`\(\s*([^()]*?)\s*\)`)
)

// Normalize rewrites flattened MULTIPOINT (x y, x y) into the standard
// MULTIPOINT ((x y), (x y)) grouping, also inside GEOMETRYCOLLECTION.
// Already grouped input is returned unchanged.
func Normalize(wkt string) string {
	return rewriteMultiPoints(wkt, func(body string) string {
		if strings.ContainsRune(body, '(') || strings.TrimSpace(body) == "" {
			return body
		}

		lead, core, trail := splitSpace(body)
		points := strings.Split(core, ",")
		for i, p := range points {
			points[i] = "(" + strings.TrimSpace(p) + ")"
		}

		return lead + strings.Join(points, ", ") + trail
	})
}

// Denormalize is the inverse of Normalize: point groups inside MULTIPOINT
// bodies are unwrapped, the numbers themselves are kept byte for byte.
func Denormalize(wkt string) string {
	return rewriteMultiPoints(wkt, func(body string) string {
		return pointGroupRegex.ReplaceAllString(body, "$1")
	})
}

// rewriteMultiPoints passes every MULTIPOINT body (the text between its
// outer parentheses) through fn.
func rewriteMultiPoints(wkt string, fn func(body string) string) string {
	locs := multiPointRegex.FindAllStringIndex(wkt, -1)
	if len(locs) == 0 {
		return wkt
	}

	var sb strings.Builder
	sb.Grow(len(wkt) + 16)

	last := 0
	for _, loc := range locs {
		if loc[0] < last {
			continue
		}

		open := bodyStart(wkt, loc[1])
		if open < 0 {
			continue
		}
		end := matchingParen(wkt, open)
		if end < 0 {
			continue
		}

		sb.WriteString(wkt[last : open+1])
		sb.WriteString(fn(wkt[open+1 : end]))
		last = end
	}
	sb.WriteString(wkt[last:])

	return sb.String()
}

// bodyStart finds the opening parenthesis after a MULTIPOINT keyword,
// allowing whitespace and Z/M dimension tags in between.
func bodyStart(wkt string, from int) int {
	for i := from; i < len(wkt); i++ {
		switch wkt[i] {
		case '(':
			return i
		case ' ', '\t', '\n', '\r', 'z', 'Z', 'm', 'M':
		default:
			return -1
		}
	}
	return -1
}

func matchingParen(wkt string, open int) int {
	depth := 0
	for i := open; i < len(wkt); i++ {
		switch wkt[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitSpace(s string) (lead, core, trail string) {
	core = strings.TrimLeft(s, " \t\n\r")
	lead = s[:len(s)-len(core)]
	trimmed := strings.TrimRight(core, " \t\n\r")
	trail = core[len(trimmed):]

	return lead, trimmed, trail
}
