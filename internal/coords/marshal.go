package coords

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// utmRecord and mgrsRecord are the JSON/YAML shapes of UTM and MGRS, with
// grid letters written as one-letter strings.
type utmRecord struct {
	Zone     uint8   `json:"zone" yaml:"zone"`
	Band     string  `json:"band" yaml:"band"`
	Easting  float64 `json:"easting" yaml:"easting"`
	Northing float64 `json:"northing" yaml:"northing"`
	North    bool    `json:"north" yaml:"north"`
}

type mgrsRecord struct {
	Zone      uint8   `json:"zone" yaml:"zone"`
	Band      string  `json:"band" yaml:"band"`
	Column    string  `json:"column" yaml:"column"`
	Row       string  `json:"row" yaml:"row"`
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Precision int     `json:"precision" yaml:"precision"`
}

func (u UTM) record() utmRecord {
	return utmRecord{
		Zone:     u.Zone,
		Band:     letterString(u.Band),
		Easting:  u.Easting,
		Northing: u.Northing,
		North:    u.North,
	}
}

func (r utmRecord) utm() (UTM, error) {
	band, err := letter("utm", "band", r.Band)
	if err != nil {
		return UTM{}, err
	}

	return NewUTM(r.Zone, band, r.Easting, r.Northing)
}

// MarshalJSON writes the band as a letter.
func (u UTM) MarshalJSON() ([]byte, error) { return json.Marshal(u.record()) }

// MarshalYAML writes the band as a letter.
func (u UTM) MarshalYAML() (any, error) { return u.record(), nil }

// UnmarshalJSON reads and validates a UTM record.
func (u *UTM) UnmarshalJSON(data []byte) error {
	var r utmRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	v, err := r.utm()
	if err != nil {
		return err
	}

	*u = v
	return nil
}

// UnmarshalYAML reads and validates a UTM record.
func (u *UTM) UnmarshalYAML(node *yaml.Node) error {
	var r utmRecord
	if err := node.Decode(&r); err != nil {
		return err
	}

	v, err := r.utm()
	if err != nil {
		return err
	}

	*u = v
	return nil
}

func (m MGRS) record() mgrsRecord {
	return mgrsRecord{
		Zone:      m.Zone,
		Band:      letterString(m.Band),
		Column:    letterString(m.Column),
		Row:       letterString(m.Row),
		X:         m.X,
		Y:         m.Y,
		Precision: m.Precision,
	}
}

func (r mgrsRecord) mgrs() (MGRS, error) {
	m := MGRS{Zone: r.Zone, X: r.X, Y: r.Y, Precision: r.Precision}

	var err error
	if m.Band, err = letter("mgrs", "band", r.Band); err != nil {
		return MGRS{}, err
	}
	if m.Column, err = letter("mgrs", "column", r.Column); err != nil {
		return MGRS{}, err
	}
	if m.Row, err = letter("mgrs", "row", r.Row); err != nil {
		return MGRS{}, err
	}
	if err := m.Validate(); err != nil {
		return MGRS{}, err
	}

	return m, nil
}

// MarshalJSON writes band, column and row as letters.
func (m MGRS) MarshalJSON() ([]byte, error) { return json.Marshal(m.record()) }

// MarshalYAML writes band, column and row as letters.
func (m MGRS) MarshalYAML() (any, error) { return m.record(), nil }

// UnmarshalJSON reads and validates an MGRS record.
func (m *MGRS) UnmarshalJSON(data []byte) error {
	var r mgrsRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	v, err := r.mgrs()
	if err != nil {
		return err
	}

	*m = v
	return nil
}

// UnmarshalYAML reads and validates an MGRS record.
func (m *MGRS) UnmarshalYAML(node *yaml.Node) error {
	var r mgrsRecord
	if err := node.Decode(&r); err != nil {
		return err
	}

	v, err := r.mgrs()
	if err != nil {
		return err
	}

	*m = v
	return nil
}

func letterString(b byte) string {
	if b == 0 {
		return ""
	}
	return string(rune(b))
}

func letter(kind, field, s string) (byte, error) {
	if len(s) != 1 {
		return 0, &FormatError{Kind: kind, Input: s, Reason: fmt.Sprintf("%s must be one letter", field)}
	}
	return upper(s[0]), nil
}
