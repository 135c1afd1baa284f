package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/woozymasta/geoconv/internal/config"
	"github.com/woozymasta/geoconv/internal/coords"
	"github.com/woozymasta/geoconv/internal/processor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T, format string, stdin string) (*env, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Output = format

	out, err := processor.NewWriter(&buf, format, false)
	require.NoError(t, err)

	return &env{
		ctx:         context.Background(),
		cfg:         cfg,
		out:         out,
		stdout:      &buf,
		stdin:       strings.NewReader(stdin),
		concurrency: 2,
	}, &buf
}

func TestConvertCoord(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		from, to  coords.Format
		precision int
		detected  coords.Format
		want      string
	}{
		{"dd to mgrs", "48.8582, 2.2945", coords.FormatAuto, coords.FormatMGRS, 5, coords.FormatDecimal, "31UDQ4825111932"},
		{"dd to mgrs 10m", "48.8582, 2.2945", coords.FormatDecimal, coords.FormatMGRS, 4, coords.FormatDecimal, "31UDQ48251193"},
		{"dd to dms", "48.8582 2.2945", coords.FormatAuto, coords.FormatDMS, 5, coords.FormatDecimal, `48°51'29.52"N 2°17'40.2"E`},
		{"dms to utm", `48°51'29.52"N 2°17'40.2"E`, coords.FormatDMS, coords.FormatUTM, 5, coords.FormatDMS, "31U4482525411933"},
		{"mgrs to utm", "33XWG0058", coords.FormatAuto, coords.FormatUTM, 5, coords.FormatMGRS, "33X5000008658000"},
		{"utm to mgrs", "31U 448252 5411933", coords.FormatUTM, coords.FormatMGRS, 3, coords.FormatUTM, "31UDQ482119"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := convertCoord(tt.input, tt.from, tt.to, tt.precision)
			require.NoError(t, err)
			assert.Equal(t, tt.detected, rec.From)
			assert.Equal(t, tt.want, rec.Output)
			assert.Equal(t, tt.want, rec.String())
		})
	}

	_, err := convertCoord("32ULC4000010000", coords.FormatUTM, coords.FormatDecimal, 5)
	assert.ErrorIs(t, err, coords.ErrInvalidFormat)
}

func TestCoordCommand(t *testing.T) {
	e, buf := testEnv(t, processor.FormatText, "48.8582, 2.2945\n\n-33.8568 151.2153\n")

	cmd := &CoordCommand{To: coords.FormatMGRS, Precision: -1, env: e}
	require.NoError(t, cmd.Execute(nil))
	assert.Equal(t, "31UDQ4825111932\n56HLH3490052288\n", buf.String())
}

func TestCoordCommandReportsFailures(t *testing.T) {
	e, buf := testEnv(t, processor.FormatText, "")

	cmd := &CoordCommand{To: coords.FormatUTM, Precision: -1, env: e}
	cmd.Args.Values = []string{"51.2, 7.5", "91, 0", "nowhere"}

	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 inputs failed")
	assert.Equal(t, "32U3952015673135\n", buf.String())
}

func TestCoordCommandJSON(t *testing.T) {
	e, buf := testEnv(t, processor.FormatJSON, "")

	cmd := &CoordCommand{To: coords.FormatMGRS, Precision: 1, env: e}
	cmd.Args.Values = []string{"31UDQ4825111932"}
	require.NoError(t, cmd.Execute(nil))

	out := buf.String()
	assert.Contains(t, out, `"from": "mgrs"`)
	assert.Contains(t, out, `"to": "mgrs"`)
	assert.Contains(t, out, `"output": "31UDQ41"`)
}

func TestWKTOps(t *testing.T) {
	e, buf := testEnv(t, processor.FormatText, "")

	split := &wktOp{env: e, run: splitOp}
	split.Args.Values = []string{"POLYGON ((162 70, 226 70, 226 26, 162 26, 162 70))"}
	require.NoError(t, split.Execute(nil))

	explode := &wktOp{env: e, run: explodeOp}
	explode.Args.Values = []string{strings.TrimSpace(buf.String())}
	buf.Reset()
	require.NoError(t, explode.Execute(nil))
	assert.Equal(t,
		"POLYGON ((-180 26, -180 70, -134 70, -134 26, -180 26))\nPOLYGON ((180 70, 180 26, 162 26, 162 70, 180 70))\n",
		buf.String())

	buf.Reset()
	norm := &wktOp{env: e, run: normalizeOp}
	norm.Input = ""
	e.stdin = strings.NewReader("MULTIPOINT (1 2, 3 4)\nMULTIPOINT ((5 6))\n")
	require.NoError(t, norm.Execute(nil))
	assert.Equal(t, "MULTIPOINT ((1 2), (3 4))\nMULTIPOINT ((5 6))\n", buf.String())

	buf.Reset()
	denorm := &wktOp{env: e, run: denormalizeOp}
	denorm.Args.Values = []string{"MULTIPOINT ((-1 -1), (29.5 -15.5), (-30.5 14.5))"}
	require.NoError(t, denorm.Execute(nil))
	assert.Equal(t, "MULTIPOINT (-1 -1, 29.5 -15.5, -30.5 14.5)\n", buf.String())
}

func TestGeoJSONCommand(t *testing.T) {
	tests := []struct {
		name string
		to   string
		doc  string
		want []string
	}{
		{
			"bare geometry to georss", "georss",
			`{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,0]],[[1,1],[2,1],[2,2],[1,1]]]}`,
			[]string{"polygon 0 0 0 10 10 10 0 0\n"},
		},
		{
			"feature collection to georss", "georss",
			`{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[-71.92,45.256]}},
				{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[-110.45,45.256],[-109.48,46.46]]}}]}`,
			[]string{"point 45.256 -71.92\nline 45.256 -110.45 46.46 -109.48\n"},
		},
		{
			"feature to xml", "georss-xml",
			`{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[-71.92,45.256]}}`,
			[]string{`<georss:point>45.256 -71.92</georss:point>`, `xmlns:georss="http://www.georss.org/georss"`},
		},
		{
			"geometry to json", "json",
			`{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}`,
			[]string{`"type": "MultiPoint"`, `"coordinates": [`},
		},
		{
			"geometry to yaml", "yaml",
			`{"type":"Point","coordinates":[1.5,2]}`,
			[]string{"type: Point\n", "coordinates:\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, buf := testEnv(t, processor.FormatText, tt.doc)

			cmd := &GeoJSONCommand{To: tt.to, env: e}
			require.NoError(t, cmd.Execute(nil))

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestGeoJSONCommandRejectsBadNesting(t *testing.T) {
	e, _ := testEnv(t, processor.FormatText, `{"type":"LineString","coordinates":[1,2]}`)

	cmd := &GeoJSONCommand{To: "georss", env: e}
	assert.Error(t, cmd.Execute(nil))
}
