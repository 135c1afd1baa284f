package processor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

// Output formats understood by Writer.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const jsonMediaType = "application/json"

// Writer encodes values one after another in a single output format.
type Writer struct {
	w       io.Writer
	format  string
	compact bool
	min     *minify.M
}

// NewWriter returns a Writer for format. Compact strips JSON whitespace.
func NewWriter(w io.Writer, format string, compact bool) (*Writer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	m := minify.New()
	m.AddFunc(jsonMediaType, mjson.Minify)

	return &Writer{w: w, format: format, compact: compact, min: m}, nil
}

// Write encodes v. Text output uses fmt's %v verb, so Stringers render
// their canonical form.
func (w *Writer) Write(v any) error {
	switch w.format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		if w.compact {
			if data, err = w.min.Bytes(jsonMediaType, data); err != nil {
				return fmt.Errorf("minify json: %w", err)
			}
		}
		_, err = fmt.Fprintf(w.w, "%s\n", data)
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		return enc.Close()
	}

	_, err := fmt.Fprintln(w.w, v)
	return err
}
