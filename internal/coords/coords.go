// Package coords converts WGS84 positions between decimal degrees,
// degrees-minutes-seconds, UTM and MGRS.
//
// All values are immutable and every conversion pivots through
// DecimalDegrees, so range checks and zone selection live in one place:
// DMS to UTM is DMS -> DecimalDegrees -> UTM.
package coords

import (
	"math"
	"strconv"
)

// DecimalDegrees is a latitude/longitude pair in degrees.
type DecimalDegrees struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// NewDecimalDegrees returns a validated DecimalDegrees.
func NewDecimalDegrees(lat, lon float64) (DecimalDegrees, error) {
	dd := DecimalDegrees{Lat: lat, Lon: lon}
	if err := dd.Validate(); err != nil {
		return DecimalDegrees{}, err
	}

	return dd, nil
}

// Validate checks latitude is within ±90 and longitude within ±180.
func (d DecimalDegrees) Validate() error {
	if math.IsNaN(d.Lat) || d.Lat < -90 || d.Lat > 90 {
		return &RangeError{Field: "latitude", Value: d.Lat}
	}
	if math.IsNaN(d.Lon) || d.Lon < -180 || d.Lon > 180 {
		return &RangeError{Field: "longitude", Value: d.Lon}
	}

	return nil
}

// String renders "lat, lon" with the shortest exact float representation.
func (d DecimalDegrees) String() string {
	return strconv.FormatFloat(d.Lat, 'f', -1, 64) + ", " + strconv.FormatFloat(d.Lon, 'f', -1, 64)
}

// ToDecimalDegrees validates and returns the receiver.
func (d DecimalDegrees) ToDecimalDegrees() (DecimalDegrees, error) {
	return d, d.Validate()
}

// ToDMS splits both axes into whole degrees, whole minutes and fractional
// seconds. Seconds are not rounded so the inverse is exact up to float error.
func (d DecimalDegrees) ToDMS() (DMS, error) {
	if err := d.Validate(); err != nil {
		return DMS{}, err
	}

	latDeg, latMin, latSec := splitDegrees(d.Lat)
	lonDeg, lonMin, lonSec := splitDegrees(d.Lon)

	dms := DMS{
		Lat: DMSLatitude{Degrees: uint8(latDeg), Minutes: uint8(latMin), Seconds: latSec, Hemisphere: North},
		Lon: DMSLongitude{Degrees: uint16(lonDeg), Minutes: uint8(lonMin), Seconds: lonSec, Hemisphere: East},
	}
	if d.Lat < 0 {
		dms.Lat.Hemisphere = South
	}
	if d.Lon < 0 {
		dms.Lon.Hemisphere = West
	}

	return dms, nil
}

// ToUTM projects the position into its UTM zone, honoring the Norway and
// Svalbard zone exceptions.
func (d DecimalDegrees) ToUTM() (UTM, error) {
	if err := d.Validate(); err != nil {
		return UTM{}, err
	}

	zone := zoneFor(d.Lat, d.Lon)
	easting, northing := project(d.Lat, d.Lon, zone)

	return UTM{
		Zone:     zone,
		Band:     bandFor(d.Lat),
		Easting:  easting,
		Northing: northing,
		North:    d.Lat >= 0,
	}, nil
}

// ToMGRS derives the UTM position and encodes it as an MGRS reference with
// precision digit pairs (0 = 100 km square, 5 = 1 m). Latitudes outside
// -80..84 fail with a RangeError.
func (d DecimalDegrees) ToMGRS(precision int) (MGRS, error) {
	if err := validatePrecision(precision); err != nil {
		return MGRS{}, err
	}

	u, err := d.ToUTM()
	if err != nil {
		return MGRS{}, err
	}

	// polar caps belong to UPS, which has no MGRS grid here
	if d.Lat < minGridLat || d.Lat > maxGridLat {
		return MGRS{}, &RangeError{Field: "latitude", Value: d.Lat}
	}

	return mgrsFromUTM(u, precision)
}

func splitDegrees(v float64) (deg, mins int, sec float64) {
	abs := math.Abs(v)
	deg = int(abs)
	minutes := (abs - float64(deg)) * 60
	mins = int(minutes)
	sec = (minutes - float64(mins)) * 60

	return deg, mins, sec
}
