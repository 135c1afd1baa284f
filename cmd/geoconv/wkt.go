package main

import (
	"strings"

	"github.com/woozymasta/geoconv/internal/antimeridian"
)

// WKTCommand groups the WKT rewrites.
type WKTCommand struct {
	Normalize   wktOp `command:"normalize"   description:"Group MULTIPOINT members as MULTIPOINT ((x y), (x y))"`
	Denormalize wktOp `command:"denormalize" description:"Flatten MULTIPOINT members to MULTIPOINT (x y, x y)"`
	Split       wktOp `command:"split"       description:"Normalize longitudes and split polygons crossing the antimeridian" alias:"unwrap"`
	Explode     wktOp `command:"explode"     description:"Emit one POLYGON per MULTIPOLYGON member"`
}

// wktOp runs one rewrite over every input WKT line.
type wktOp struct {
	InputOptions

	Args struct {
		Values []string `positional-arg-name:"WKT"`
	} `positional-args:"yes"`

	env *env
	run func(string) ([]string, error)
}

type wktRecord struct {
	Input  string   `json:"input" yaml:"input"`
	Output []string `json:"output" yaml:"output"`
}

func (r wktRecord) String() string { return strings.Join(r.Output, "\n") }

// Execute implements flags.Commander.
func (o *wktOp) Execute(args []string) error {
	lines, err := o.lines(o.env, append(o.Args.Values, args...))
	if err != nil {
		return err
	}

	return runBatch(o.env, lines, func(input string) (wktRecord, error) {
		out, err := o.run(input)
		if err != nil {
			return wktRecord{}, err
		}
		return wktRecord{Input: input, Output: out}, nil
	})
}

func normalizeOp(s string) ([]string, error) {
	return []string{antimeridian.Normalize(s)}, nil
}

func denormalizeOp(s string) ([]string, error) {
	return []string{antimeridian.Denormalize(s)}, nil
}

func splitOp(s string) ([]string, error) {
	out, err := antimeridian.UnwrapAndSplit(s)
	if err != nil {
		return nil, err
	}
	return []string{out}, nil
}

func explodeOp(s string) ([]string, error) {
	return antimeridian.MultiPolygonToPolygons(s)
}
