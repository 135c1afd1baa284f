package coords

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Format is a coordinate text notation.
type Format int

// Supported notations. FormatAuto asks Parse to detect the notation.
const (
	FormatAuto Format = iota
	FormatDecimal
	FormatDMS
	FormatUTM
	FormatMGRS
)

var formatNames = map[Format]string{
	FormatAuto:    "auto",
	FormatDecimal: "dd",
	FormatDMS:     "dms",
	FormatUTM:     "utm",
	FormatMGRS:    "mgrs",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat resolves a notation name; "decimal" is accepted for "dd".
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "decimal" {
		return FormatDecimal, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}

	return FormatAuto, fmt.Errorf("unknown coordinate format %q", name)
}

// UnmarshalFlag lets go-flags fill Format options.
func (f *Format) UnmarshalFlag(value string) error {
	parsed, err := ParseFormat(value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText renders the notation name.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses the notation name, used by the YAML config.
func (f *Format) UnmarshalText(text []byte) error {
	return f.UnmarshalFlag(string(text))
}

var (
	// zone, band, easting (6 digits), northing (7 digits)
	utmRegex = regexp.MustCompile(`^(\d{1,2})\s*([A-Z])\s*(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)$|^(\d{1,2})([A-Z])(\d{6})(\d{7})$`)

	// zone, band, two square letters, even digit group
	mgrsRegex = regexp.MustCompile(`^(\d{1,2})([A-Z])([A-Z])([A-Z])(\d*)$`)

	// 19°51'22.5"N 99°48'59"E, 19d51m22sN 99d48m59sE, 19 51 22 N 99 48 59 E
	dmsRegex = regexp.MustCompile(`(?i)^(\d{1,2})[°d\s]\s*(\d{1,2})[′'m\s]\s*(\d{1,2}(?:\.\d+)?)[″"s]?\s*([NS])[\s,]+(\d{1,3})[°d\s]\s*(\d{1,2})[′'m\s]\s*(\d{1,2}(?:\.\d+)?)[″"s]?\s*([EW])$`)

	// lat, lon or lat lon
	decimalRegex = regexp.MustCompile(`^([-+]?\d+(?:\.\d*)?)\s*[,\s]\s*([-+]?\d+(?:\.\d*)?)$`)
)

// Parse detects the notation of input (MGRS, UTM, DMS, then decimal) and
// returns it together with the equivalent DecimalDegrees.
func Parse(input string) (Format, DecimalDegrees, error) {
	compact := compactUpper(input)
	trimmed := strings.TrimSpace(input)

	switch {
	case mgrsRegex.MatchString(compact):
		m, err := ParseMGRS(input)
		if err != nil {
			return FormatMGRS, DecimalDegrees{}, err
		}
		dd, err := m.ToDecimalDegrees()
		return FormatMGRS, dd, err

	case utmRegex.MatchString(strings.ToUpper(trimmed)):
		u, err := ParseUTM(input)
		if err != nil {
			return FormatUTM, DecimalDegrees{}, err
		}
		dd, err := u.ToDecimalDegrees()
		return FormatUTM, dd, err

	case dmsRegex.MatchString(trimmed):
		d, err := ParseDMS(input)
		if err != nil {
			return FormatDMS, DecimalDegrees{}, err
		}
		dd, err := d.ToDecimalDegrees()
		return FormatDMS, dd, err

	case decimalRegex.MatchString(trimmed):
		dd, err := ParseDecimalDegrees(input)
		return FormatDecimal, dd, err
	}

	return FormatAuto, DecimalDegrees{}, &FormatError{Kind: "coordinate", Input: input, Reason: "unrecognized notation"}
}

// ParseDecimalDegrees parses "lat, lon" or "lat lon".
func ParseDecimalDegrees(input string) (DecimalDegrees, error) {
	matches := decimalRegex.FindStringSubmatch(strings.TrimSpace(input))
	if matches == nil {
		return DecimalDegrees{}, &FormatError{Kind: "decimal", Input: input, Reason: "expected \"lat, lon\""}
	}

	lat, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return DecimalDegrees{}, &FormatError{Kind: "decimal", Input: input, Reason: err.Error()}
	}
	lon, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return DecimalDegrees{}, &FormatError{Kind: "decimal", Input: input, Reason: err.Error()}
	}

	return NewDecimalDegrees(lat, lon)
}

// ParseDMS parses degrees-minutes-seconds text with N/S and E/W suffixes.
func ParseDMS(input string) (DMS, error) {
	matches := dmsRegex.FindStringSubmatch(strings.TrimSpace(input))
	if matches == nil {
		return DMS{}, &FormatError{Kind: "dms", Input: input, Reason: `expected 40°26'46"N 79°58'56"W`}
	}

	// the regex bounds every group, so Atoi/ParseFloat cannot fail
	latDeg, _ := strconv.Atoi(matches[1])
	latMin, _ := strconv.Atoi(matches[2])
	latSec, _ := strconv.ParseFloat(matches[3], 64)
	lonDeg, _ := strconv.Atoi(matches[5])
	lonMin, _ := strconv.Atoi(matches[6])
	lonSec, _ := strconv.ParseFloat(matches[7], 64)

	if latDeg > 90 {
		return DMS{}, &RangeError{Field: "latitude degrees", Value: float64(latDeg)}
	}
	if lonDeg > 180 {
		return DMS{}, &RangeError{Field: "longitude degrees", Value: float64(lonDeg)}
	}

	d := DMS{
		Lat: DMSLatitude{
			Degrees:    uint8(latDeg),
			Minutes:    uint8(latMin),
			Seconds:    latSec,
			Hemisphere: Hemisphere(upper(matches[4][0])),
		},
		Lon: DMSLongitude{
			Degrees:    uint16(lonDeg),
			Minutes:    uint8(lonMin),
			Seconds:    lonSec,
			Hemisphere: Hemisphere(upper(matches[8][0])),
		},
	}
	if err := d.Validate(); err != nil {
		return DMS{}, err
	}

	return d, nil
}

// ParseUTM parses "<zone><band><easting:6><northing:7>", optionally with
// whitespace between groups ("18T 585628 4511322").
func ParseUTM(input string) (UTM, error) {
	matches := utmRegex.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(input)))
	if matches == nil {
		return UTM{}, &FormatError{Kind: "utm", Input: input, Reason: "expected <zone><band><easting:6 digits><northing:7 digits>"}
	}

	// second alternative holds the fully compact form
	groups := matches[1:5]
	if matches[1] == "" {
		groups = matches[5:9]
	}

	zone, _ := strconv.Atoi(groups[0])
	if zone < 1 || zone > 60 {
		return UTM{}, &FormatError{Kind: "utm", Input: input, Reason: fmt.Sprintf("zone %d must be 1..60", zone)}
	}

	band := groups[1][0]
	if !validBand(band) {
		return UTM{}, &FormatError{Kind: "utm", Input: input, Reason: fmt.Sprintf("invalid latitude band %q", band)}
	}

	if whole, _, _ := strings.Cut(groups[2], "."); len(whole) != 6 {
		return UTM{}, &FormatError{Kind: "utm", Input: input, Reason: "easting must have 6 digits"}
	}
	if whole, _, _ := strings.Cut(groups[3], "."); len(whole) != 7 {
		return UTM{}, &FormatError{Kind: "utm", Input: input, Reason: "northing must have 7 digits"}
	}

	easting, _ := strconv.ParseFloat(groups[2], 64)
	northing, _ := strconv.ParseFloat(groups[3], 64)

	return NewUTM(uint8(zone), band, easting, northing)
}

// ParseMGRS parses "<zone><band><column><row><x digits><y digits>". The
// digit group must be even; its half width is the precision.
func ParseMGRS(input string) (MGRS, error) {
	compact := compactUpper(input)
	matches := mgrsRegex.FindStringSubmatch(compact)
	if matches == nil {
		return MGRS{}, &FormatError{Kind: "mgrs", Input: input, Reason: "expected <zone><band><column><row><digits>"}
	}

	zone, _ := strconv.Atoi(matches[1])
	if zone < 1 || zone > 60 {
		return MGRS{}, &FormatError{Kind: "mgrs", Input: input, Reason: fmt.Sprintf("zone %d must be 1..60", zone)}
	}

	digits := matches[5]
	if len(digits)%2 != 0 {
		return MGRS{}, &FormatError{Kind: "mgrs", Input: input, Reason: "digit group must have an even length"}
	}

	precision := len(digits) / 2
	if precision > MaxPrecision {
		return MGRS{}, &FormatError{Kind: "mgrs", Input: input, Reason: "more than 5 digit pairs"}
	}

	m := MGRS{
		Zone:      uint8(zone),
		Band:      matches[2][0],
		Column:    matches[3][0],
		Row:       matches[4][0],
		Precision: precision,
	}

	if precision > 0 {
		scale := precisionScale(precision)
		x, _ := strconv.Atoi(digits[:precision])
		y, _ := strconv.Atoi(digits[precision:])
		m.X = float64(x) * scale
		m.Y = float64(y) * scale
	}

	if err := m.Validate(); err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Input = input
		}
		return MGRS{}, err
	}

	return m, nil
}

// compactUpper strips all whitespace and upper-cases input.
func compactUpper(input string) string {
	return strings.ToUpper(strings.Join(strings.Fields(input), ""))
}
