package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/woozymasta/geoconv/internal/geometry"
	"github.com/woozymasta/geoconv/internal/processor"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// GeoJSONCommand converts GeoJSON geometries, features or feature
// collections.
type GeoJSONCommand struct {
	InputOptions

	To string `short:"t" long:"to" description:"Target format" choice:"georss" choice:"georss-xml" choice:"json" choice:"yaml" default:"georss"`

	Args struct {
		Document string `positional-arg-name:"GEOJSON"`
	} `positional-args:"yes"`

	env *env
}

// Execute implements flags.Commander.
func (c *GeoJSONCommand) Execute(args []string) error {
	e := c.env

	if c.Args.Document != "" {
		args = append([]string{c.Args.Document}, args...)
	}
	data, err := c.readAll(e, args)
	if err != nil {
		return err
	}

	geoms, err := decodeGeoJSON(data)
	if err != nil {
		return err
	}

	log.Debug().
		Int("geometries", len(geoms)).
		Str("to", c.To).
		Msg("GeoJSON decoded")

	return writeGeometries(e, geoms, c.To)
}

// decodeGeoJSON accepts a geometry object, a Feature or a FeatureCollection.
func decodeGeoJSON(data []byte) ([]geometry.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse GeoJSON: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse feature collection: %w", err)
		}
		out := make([]geometry.Geometry, 0, len(fc.Features))
		for i, f := range fc.Features {
			g, err := geometry.FromOrb(f.Geometry)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			out = append(out, g)
		}
		return out, nil

	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parse feature: %w", err)
		}
		g, err := geometry.FromOrb(f.Geometry)
		if err != nil {
			return nil, err
		}
		return []geometry.Geometry{g}, nil
	}

	// bare geometries go through the nested array decoder
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse geometry: %w", err)
	}

	g, err := geometry.DecodeMap(m)
	if err != nil {
		return nil, err
	}

	return []geometry.Geometry{g}, nil
}

func writeGeometries(e *env, geoms []geometry.Geometry, to string) error {
	switch to {
	case "json", "yaml":
		w, err := processor.NewWriter(e.stdout, to, e.compact)
		if err != nil {
			return err
		}
		for _, g := range geoms {
			m, err := g.ToJSONMap()
			if err != nil {
				return err
			}
			if err := w.Write(m); err != nil {
				return err
			}
		}
		return nil

	case "georss-xml":
		for _, g := range geoms {
			seq, err := g.GeoRSSPositions()
			if err != nil {
				return err
			}
			if err := geometry.EncodeGeoRSS(e.stdout, seq); err != nil {
				return err
			}
			fmt.Fprintln(e.stdout)
		}
		return nil
	}

	for _, g := range geoms {
		seq, err := g.GeoRSSPositions()
		if err != nil {
			return err
		}
		for p := range seq {
			if e.out != nil && e.cfg.Output != processor.FormatText {
				if err := e.out.Write(p); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(e.stdout, "%s %s\n", p.Kind, p)
		}
	}

	return nil
}
