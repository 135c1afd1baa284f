package coords

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hemisphere is the N/S/E/W suffix of a DMS axis.
type Hemisphere byte

// Hemisphere letters.
const (
	North Hemisphere = 'N'
	South Hemisphere = 'S'
	East  Hemisphere = 'E'
	West  Hemisphere = 'W'
)

// DMSLatitude is the latitude axis of a DMS coordinate.
type DMSLatitude struct {
	Degrees    uint8      `json:"degrees" yaml:"degrees"`
	Minutes    uint8      `json:"minutes" yaml:"minutes"`
	Seconds    float64    `json:"seconds" yaml:"seconds"`
	Hemisphere Hemisphere `json:"hemisphere" yaml:"hemisphere"`
}

// DMSLongitude is the longitude axis of a DMS coordinate.
type DMSLongitude struct {
	Degrees    uint16     `json:"degrees" yaml:"degrees"`
	Minutes    uint8      `json:"minutes" yaml:"minutes"`
	Seconds    float64    `json:"seconds" yaml:"seconds"`
	Hemisphere Hemisphere `json:"hemisphere" yaml:"hemisphere"`
}

// DMS is a degrees-minutes-seconds coordinate.
type DMS struct {
	Lat DMSLatitude  `json:"lat" yaml:"lat"`
	Lon DMSLongitude `json:"lon" yaml:"lon"`
}

// MarshalText renders the hemisphere as its letter.
func (h Hemisphere) MarshalText() ([]byte, error) {
	return []byte{byte(h)}, nil
}

// Validate checks minute/second ranges and hemisphere letters. The total
// degree range is checked when converting to DecimalDegrees.
func (d DMS) Validate() error {
	input := d.String()

	if d.Lat.Hemisphere != North && d.Lat.Hemisphere != South {
		return &FormatError{Kind: "dms", Input: input, Reason: "latitude hemisphere must be N or S"}
	}
	if d.Lon.Hemisphere != East && d.Lon.Hemisphere != West {
		return &FormatError{Kind: "dms", Input: input, Reason: "longitude hemisphere must be E or W"}
	}
	if d.Lat.Minutes >= 60 {
		return &RangeError{Field: "latitude minutes", Value: float64(d.Lat.Minutes)}
	}
	if d.Lon.Minutes >= 60 {
		return &RangeError{Field: "longitude minutes", Value: float64(d.Lon.Minutes)}
	}
	if !validSeconds(d.Lat.Seconds) {
		return &RangeError{Field: "latitude seconds", Value: d.Lat.Seconds}
	}
	if !validSeconds(d.Lon.Seconds) {
		return &RangeError{Field: "longitude seconds", Value: d.Lon.Seconds}
	}

	return nil
}

// ToDecimalDegrees sums degrees, minutes/60 and seconds/3600 and applies the
// hemisphere sign.
func (d DMS) ToDecimalDegrees() (DecimalDegrees, error) {
	if err := d.Validate(); err != nil {
		return DecimalDegrees{}, err
	}

	lat := float64(d.Lat.Degrees) + float64(d.Lat.Minutes)/60 + d.Lat.Seconds/3600
	if d.Lat.Hemisphere == South {
		lat = -lat
	}

	lon := float64(d.Lon.Degrees) + float64(d.Lon.Minutes)/60 + d.Lon.Seconds/3600
	if d.Lon.Hemisphere == West {
		lon = -lon
	}

	return NewDecimalDegrees(lat, lon)
}

// ToUTM converts through DecimalDegrees.
func (d DMS) ToUTM() (UTM, error) {
	dd, err := d.ToDecimalDegrees()
	if err != nil {
		return UTM{}, err
	}

	return dd.ToUTM()
}

// ToMGRS converts through DecimalDegrees.
func (d DMS) ToMGRS(precision int) (MGRS, error) {
	dd, err := d.ToDecimalDegrees()
	if err != nil {
		return MGRS{}, err
	}

	return dd.ToMGRS(precision)
}

// String renders the coordinate as 40°26'46.302"N 79°58'55.903"W.
func (d DMS) String() string {
	latDeg, latMin, latSec := formatAxis(int(d.Lat.Degrees), int(d.Lat.Minutes), d.Lat.Seconds)
	lonDeg, lonMin, lonSec := formatAxis(int(d.Lon.Degrees), int(d.Lon.Minutes), d.Lon.Seconds)

	return fmt.Sprintf(`%d°%d'%s"%c %d°%d'%s"%c`,
		latDeg, latMin, latSec, d.Lat.Hemisphere,
		lonDeg, lonMin, lonSec, d.Lon.Hemisphere)
}

// formatAxis carries seconds that round up to 60 into minutes, and minutes
// into degrees.
func formatAxis(deg, mins int, sec float64) (int, int, string) {
	out := formatSeconds(sec)
	if out != "60" {
		return deg, mins, out
	}

	mins++
	if mins == 60 {
		mins = 0
		deg++
	}

	return deg, mins, "0"
}

func validSeconds(s float64) bool {
	return !math.IsNaN(s) && s >= 0 && s < 60
}

// formatSeconds keeps micro-second resolution without trailing zeros.
func formatSeconds(s float64) string {
	out := strconv.FormatFloat(s, 'f', 6, 64)
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}
