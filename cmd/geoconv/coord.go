package main

import (
	"github.com/woozymasta/geoconv/internal/coords"
)

// CoordCommand converts coordinate strings.
type CoordCommand struct {
	InputOptions

	From      coords.Format `long:"from"      description:"Input notation: auto, dd, dms, utm, mgrs (default from config)"`
	To        coords.Format `short:"t" long:"to" description:"Output notation: dd, dms, utm, mgrs (default from config)"`
	Precision int           `long:"precision" description:"MGRS digit pairs 0..5 (default from config)" default:"-1"`

	Args struct {
		Values []string `positional-arg-name:"VALUE"`
	} `positional-args:"yes"`

	env *env
}

type coordRecord struct {
	Input  string                `json:"input" yaml:"input"`
	From   coords.Format         `json:"from" yaml:"from"`
	To     coords.Format         `json:"to" yaml:"to"`
	Output string                `json:"output" yaml:"output"`
	DD     coords.DecimalDegrees `json:"dd" yaml:"dd"`
}

func (r coordRecord) String() string { return r.Output }

// Execute implements flags.Commander.
func (c *CoordCommand) Execute(args []string) error {
	e := c.env

	from := c.From
	if from == coords.FormatAuto {
		from = e.cfg.Coord.From
	}
	to := c.To
	if to == coords.FormatAuto {
		to = e.cfg.Coord.To
	}
	precision := c.Precision
	if precision < 0 {
		precision = e.cfg.PrecisionOr(coords.MaxPrecision)
	}

	lines, err := c.lines(e, append(c.Args.Values, args...))
	if err != nil {
		return err
	}

	return runBatch(e, lines, func(input string) (coordRecord, error) {
		return convertCoord(input, from, to, precision)
	})
}

func convertCoord(input string, from, to coords.Format, precision int) (coordRecord, error) {
	detected, dd, err := parseCoord(input, from)
	if err != nil {
		return coordRecord{}, err
	}

	out, err := formatCoord(dd, to, precision)
	if err != nil {
		return coordRecord{}, err
	}

	return coordRecord{Input: input, From: detected, To: to, Output: out, DD: dd}, nil
}

func parseCoord(input string, from coords.Format) (coords.Format, coords.DecimalDegrees, error) {
	var (
		dd  coords.DecimalDegrees
		err error
	)

	switch from {
	case coords.FormatDecimal:
		dd, err = coords.ParseDecimalDegrees(input)
	case coords.FormatDMS:
		var d coords.DMS
		if d, err = coords.ParseDMS(input); err == nil {
			dd, err = d.ToDecimalDegrees()
		}
	case coords.FormatUTM:
		var u coords.UTM
		if u, err = coords.ParseUTM(input); err == nil {
			dd, err = u.ToDecimalDegrees()
		}
	case coords.FormatMGRS:
		var m coords.MGRS
		if m, err = coords.ParseMGRS(input); err == nil {
			dd, err = m.ToDecimalDegrees()
		}
	default:
		return coords.Parse(input)
	}

	return from, dd, err
}

func formatCoord(dd coords.DecimalDegrees, to coords.Format, precision int) (string, error) {
	switch to {
	case coords.FormatDMS:
		d, err := dd.ToDMS()
		return d.String(), err
	case coords.FormatUTM:
		u, err := dd.ToUTM()
		return u.String(), err
	case coords.FormatMGRS:
		m, err := dd.ToMGRS(precision)
		return m.String(), err
	}

	return dd.String(), nil
}
