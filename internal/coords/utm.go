package coords

import (
	"fmt"
	"math"
	"strings"
)

// WGS84 ellipsoid and UTM grid constants.
const (
	wgs84A = 6378137.0
	wgs84F = 1 / 298.257223563

	utmK0         = 0.9996
	falseEasting  = 500000.0
	falseNorthing = 10000000.0

	eccSq      = wgs84F * (2 - wgs84F)
	eccPrimeSq = eccSq / (1 - eccSq)

	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Meridian arc series coefficients (Snyder, Map Projections, eq. 3-21).
const (
	arcM1 = 1 - eccSq/4 - 3*eccSq*eccSq/64 - 5*eccSq*eccSq*eccSq/256
	arcM2 = 3*eccSq/8 + 3*eccSq*eccSq/32 + 45*eccSq*eccSq*eccSq/1024
	arcM3 = 15*eccSq*eccSq/256 + 45*eccSq*eccSq*eccSq/1024
	arcM4 = 35 * eccSq * eccSq * eccSq / 3072
)

// Footpoint latitude series coefficients (Snyder, eq. 3-26).
var (
	footE1 = (1 - math.Sqrt(1-eccSq)) / (1 + math.Sqrt(1-eccSq))
	footP2 = 3*footE1/2 - 27*math.Pow(footE1, 3)/32
	footP3 = 21*footE1*footE1/16 - 55*math.Pow(footE1, 4)/32
	footP4 = 151 * math.Pow(footE1, 3) / 96
	footP5 = 1097 * math.Pow(footE1, 4) / 512
)

// bandLetters are the 8° latitude bands from 80°S; X is stretched to 84°N.
const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

// UTM is a Universal Transverse Mercator position.
type UTM struct {
	Zone     uint8
	Band     byte
	Easting  float64
	Northing float64
	North    bool
}

// NewUTM builds a validated UTM position, deriving the hemisphere from the
// band letter.
func NewUTM(zone uint8, band byte, easting, northing float64) (UTM, error) {
	band = upper(band)
	u := UTM{Zone: zone, Band: band, Easting: easting, Northing: northing, North: band >= 'N'}
	if err := u.Validate(); err != nil {
		return UTM{}, err
	}

	return u, nil
}

// Validate checks zone, band letter, hemisphere consistency and that the
// grid values are finite and inside the false-origin frame.
func (u UTM) Validate() error {
	if u.Zone < 1 || u.Zone > 60 {
		return &FormatError{Kind: "utm", Input: u.String(), Reason: fmt.Sprintf("zone %d must be 1..60", u.Zone)}
	}
	if !validBand(u.Band) {
		return &FormatError{Kind: "utm", Input: u.String(), Reason: fmt.Sprintf("invalid latitude band %q", u.Band)}
	}
	if (u.Band >= 'N') != u.North {
		return &FormatError{Kind: "utm", Input: u.String(), Reason: "band does not match hemisphere"}
	}
	if math.IsNaN(u.Easting) || u.Easting <= 0 || u.Easting >= 1000000 {
		return &RangeError{Field: "easting", Value: u.Easting}
	}
	if math.IsNaN(u.Northing) || u.Northing < 0 || u.Northing > falseNorthing {
		return &RangeError{Field: "northing", Value: u.Northing}
	}

	return nil
}

// ToDecimalDegrees applies the inverse transverse Mercator projection around
// the zone's central meridian.
func (u UTM) ToDecimalDegrees() (DecimalDegrees, error) {
	if err := u.Validate(); err != nil {
		return DecimalDegrees{}, err
	}

	lat, lon := unproject(u.Zone, u.North, u.Easting, u.Northing)
	return NewDecimalDegrees(lat, lon)
}

// ToDMS converts through DecimalDegrees.
func (u UTM) ToDMS() (DMS, error) {
	dd, err := u.ToDecimalDegrees()
	if err != nil {
		return DMS{}, err
	}

	return dd.ToDMS()
}

// ToMGRS converts through DecimalDegrees.
func (u UTM) ToMGRS(precision int) (MGRS, error) {
	dd, err := u.ToDecimalDegrees()
	if err != nil {
		return MGRS{}, err
	}

	return dd.ToMGRS(precision)
}

// String renders the compact form <zone><band><easting:6><northing:7> with
// whole meters.
func (u UTM) String() string {
	return fmt.Sprintf("%d%c%06.0f%07.0f", u.Zone, u.Band, math.Round(u.Easting), math.Round(u.Northing))
}

// centralMeridian returns the zone's central meridian in degrees.
func centralMeridian(zone uint8) float64 {
	return float64(zone)*6 - 183
}

// zoneFor picks the UTM zone, including the Norway and Svalbard exceptions.
func zoneFor(lat, lon float64) uint8 {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone > 60 {
		zone = 60
	}

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}

	if lat >= 72 && lat <= 84 && lon >= 0 {
		switch {
		case lon < 9:
			return 31
		case lon < 21:
			return 33
		case lon < 33:
			return 35
		case lon < 42:
			return 37
		}
	}

	return uint8(zone)
}

// bandFor looks the latitude up in the 8° band table. Polar latitudes clamp
// to C and X.
func bandFor(lat float64) byte {
	i := int(math.Floor((lat + 80) / 8))
	if i < 0 {
		i = 0
	} else if i >= len(bandLetters) {
		i = len(bandLetters) - 1
	}

	return bandLetters[i]
}

func validBand(b byte) bool {
	return b != 0 && strings.IndexByte(bandLetters, b) >= 0
}

// bandSouthEdge returns the southern latitude of a valid band.
func bandSouthEdge(b byte) float64 {
	return float64(strings.IndexByte(bandLetters, b))*8 - 80
}

func meridianArc(phi float64) float64 {
	return wgs84A * (arcM1*phi - arcM2*math.Sin(2*phi) + arcM3*math.Sin(4*phi) - arcM4*math.Sin(6*phi))
}

// project is the forward transverse Mercator series for the given zone.
func project(lat, lon float64, zone uint8) (easting, northing float64) {
	phi := lat * deg2rad
	sin, cos := math.Sincos(phi)
	tan := math.Tan(phi)

	n := wgs84A / math.Sqrt(1-eccSq*sin*sin)
	t := tan * tan
	c := eccPrimeSq * cos * cos
	a := cos * (lon - centralMeridian(zone)) * deg2rad
	m := meridianArc(phi)

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	easting = utmK0*n*(a+
		(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*eccPrimeSq)*a5/120) + falseEasting

	northing = utmK0 * (m + n*tan*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*eccPrimeSq)*a6/720))

	if lat < 0 {
		northing += falseNorthing
	}

	return easting, northing
}

// unproject is the inverse series through the footpoint latitude.
func unproject(zone uint8, north bool, easting, northing float64) (lat, lon float64) {
	x := easting - falseEasting
	y := northing
	if !north {
		y -= falseNorthing
	}

	mu := y / utmK0 / (wgs84A * arcM1)
	phi1 := mu +
		footP2*math.Sin(2*mu) +
		footP3*math.Sin(4*mu) +
		footP4*math.Sin(6*mu) +
		footP5*math.Sin(8*mu)

	sin1, cos1 := math.Sincos(phi1)
	tan1 := math.Tan(phi1)
	t1 := tan1 * tan1
	c1 := eccPrimeSq * cos1 * cos1
	w := 1 - eccSq*sin1*sin1
	n1 := wgs84A / math.Sqrt(w)
	r1 := wgs84A * (1 - eccSq) / (w * math.Sqrt(w))
	d := x / (n1 * utmK0)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	latRad := phi1 - (n1*tan1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*eccPrimeSq)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*eccPrimeSq-3*c1*c1)*d6/720)

	lonRad := (d -
		(1+2*t1+c1)*d3/6 +
		(5-2*c1+28*t1-3*c1*c1+8*eccPrimeSq+24*t1*t1)*d5/120) / cos1

	lat = math.Max(-90, math.Min(90, latRad*rad2deg))
	lon = centralMeridian(zone) + lonRad*rad2deg
	if lon > 180 {
		lon -= 360
	} else if lon < -180 {
		lon += 360
	}

	return lat, lon
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
