package coords

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxPrecision is the number of digit pairs of a 1 m MGRS reference.
const MaxPrecision = 5

// 100 km square letters. Columns repeat every three zones, rows every
// 2,000 km with even zones shifted by five letters.
var columnSets = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}

const (
	rowLetters    = "ABCDEFGHJKLMNPQRSTUV"
	evenRowOffset = 5
	squareSize    = 100000.0
	rowCycle      = 2000000.0

	// grid squares may start below the southern band edge
	bandEdgeAllowance = 20000.0

	minGridLat = -80.0
	maxGridLat = 84.0
)

// MGRS is a Military Grid Reference System position. X and Y are meters
// inside the 100 km square, already truncated to Precision digit pairs.
type MGRS struct {
	Zone      uint8
	Band      byte
	Column    byte
	Row       byte
	X         float64
	Y         float64
	Precision int
}

// Validate checks the zone, band and 100 km square letters.
func (m MGRS) Validate() error {
	input := m.String()

	if m.Zone < 1 || m.Zone > 60 {
		return &FormatError{Kind: "mgrs", Input: input, Reason: fmt.Sprintf("zone %d must be 1..60", m.Zone)}
	}
	if !validBand(m.Band) {
		return &FormatError{Kind: "mgrs", Input: input, Reason: fmt.Sprintf("invalid latitude band %q", m.Band)}
	}
	if columnIndex(m.Zone, m.Column) < 0 {
		return &FormatError{Kind: "mgrs", Input: input, Reason: fmt.Sprintf("column letter %q is not used in zone %d", m.Column, m.Zone)}
	}
	if m.Row == 0 || strings.IndexByte(rowLetters, m.Row) < 0 {
		return &FormatError{Kind: "mgrs", Input: input, Reason: fmt.Sprintf("invalid row letter %q", m.Row)}
	}
	if err := validatePrecision(m.Precision); err != nil {
		return err
	}
	if math.IsNaN(m.X) || m.X < 0 || m.X >= squareSize {
		return &RangeError{Field: "x", Value: m.X}
	}
	if math.IsNaN(m.Y) || m.Y < 0 || m.Y >= squareSize {
		return &RangeError{Field: "y", Value: m.Y}
	}

	return nil
}

// ToDecimalDegrees unpacks the grid reference to UTM and applies the
// inverse projection. The result is the south-west corner of the cell.
func (m MGRS) ToDecimalDegrees() (DecimalDegrees, error) {
	u, err := m.utm()
	if err != nil {
		return DecimalDegrees{}, err
	}

	return u.ToDecimalDegrees()
}

// ToDMS converts through DecimalDegrees.
func (m MGRS) ToDMS() (DMS, error) {
	dd, err := m.ToDecimalDegrees()
	if err != nil {
		return DMS{}, err
	}

	return dd.ToDMS()
}

// ToUTM converts through DecimalDegrees.
func (m MGRS) ToUTM() (UTM, error) {
	dd, err := m.ToDecimalDegrees()
	if err != nil {
		return UTM{}, err
	}

	return dd.ToUTM()
}

// String renders the compact reference, e.g. 31UDQ4825111932.
func (m MGRS) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(m.Zone)))
	for _, b := range []byte{m.Band, m.Column, m.Row} {
		if b != 0 {
			sb.WriteByte(b)
		}
	}

	if m.Precision > 0 && m.Precision <= MaxPrecision {
		scale := precisionScale(m.Precision)
		fmt.Fprintf(&sb, "%0*d%0*d",
			m.Precision, int(math.Floor(m.X/scale)),
			m.Precision, int(math.Floor(m.Y/scale)))
	}

	return sb.String()
}

// mgrsFromUTM encodes the 100 km square letters and the truncated offsets.
func mgrsFromUTM(u UTM, precision int) (MGRS, error) {
	col := int(math.Floor(u.Easting / squareSize))
	if col < 1 || col > 8 {
		return MGRS{}, &RangeError{Field: "easting", Value: u.Easting}
	}

	row := int(math.Floor(u.Northing/squareSize)) % len(rowLetters)
	if u.Zone%2 == 0 {
		row = (row + evenRowOffset) % len(rowLetters)
	}

	scale := precisionScale(precision)

	return MGRS{
		Zone:      u.Zone,
		Band:      u.Band,
		Column:    columnSets[(u.Zone-1)%3][col-1],
		Row:       rowLetters[row],
		X:         math.Floor(math.Mod(u.Easting, squareSize)/scale) * scale,
		Y:         math.Floor(math.Mod(u.Northing, squareSize)/scale) * scale,
		Precision: precision,
	}, nil
}

// utm restores the full UTM position. The row letter only fixes northing
// modulo 2,000 km; the block is chosen as the first one reaching the band.
func (m MGRS) utm() (UTM, error) {
	if err := m.Validate(); err != nil {
		return UTM{}, err
	}

	col := columnIndex(m.Zone, m.Column)
	row := strings.IndexByte(rowLetters, m.Row)
	if m.Zone%2 == 0 {
		row = (row - evenRowOffset + len(rowLetters)) % len(rowLetters)
	}

	easting := float64(col+1)*squareSize + m.X
	northing := float64(row)*squareSize + m.Y

	_, bandFloor := project(bandSouthEdge(m.Band), centralMeridian(m.Zone), m.Zone)
	bandFloor -= bandEdgeAllowance
	for northing < bandFloor {
		northing += rowCycle
	}

	return NewUTM(m.Zone, m.Band, easting, northing)
}

func columnIndex(zone uint8, column byte) int {
	if zone < 1 || column == 0 {
		return -1
	}
	return strings.IndexByte(columnSets[(zone-1)%3], column)
}

func validatePrecision(precision int) error {
	if precision < 0 || precision > MaxPrecision {
		return &RangeError{Field: "precision", Value: float64(precision)}
	}
	return nil
}

// precisionScale is the cell size in meters for the given digit pairs.
func precisionScale(precision int) float64 {
	return math.Pow10(MaxPrecision - precision)
}
