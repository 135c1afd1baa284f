package main

import (
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/geoconv/internal/processor"

	"github.com/rs/zerolog/log"
)

// InputOptions selects where batch values come from.
type InputOptions struct {
	Input string `short:"i" long:"in" description:"Input file, one value per line. Reads stdin when no values are given"`
}

// lines returns positional values, else the input file, else stdin.
func (o InputOptions) lines(e *env, args []string) ([]processor.Line, error) {
	if len(args) > 0 {
		lines := make([]processor.Line, len(args))
		for i, a := range args {
			lines[i] = processor.Line{Number: i + 1, Text: a}
		}
		return lines, nil
	}

	r, closeFn, err := o.open(e)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return processor.ReadLines(r)
}

// readAll returns the whole input as one document.
func (o InputOptions) readAll(e *env, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}

	r, closeFn, err := o.open(e)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return io.ReadAll(r)
}

func (o InputOptions) open(e *env) (io.Reader, func(), error) {
	if o.Input == "" {
		return e.stdin, func() {}, nil
	}

	f, err := os.Open(o.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}

// runBatch converts lines concurrently and writes successes in input order.
// Failed lines are logged and reported in the returned error.
func runBatch[T any](e *env, lines []processor.Line, fn func(string) (T, error)) error {
	results := processor.ProcessBatch(e.ctx, e.concurrency, lines, fn)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Error().
				Err(res.Err).
				Int("line", res.Line.Number).
				Str("input", res.Line.Text).
				Msg("Failed to convert")
			continue
		}

		if err := e.out.Write(res.Value); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(lines))
	}

	log.Info().
		Int("converted", len(lines)).
		Msg("Conversion finished")

	return nil
}
