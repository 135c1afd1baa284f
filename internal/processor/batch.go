// Package processor runs line-oriented conversions on a bounded worker pool
// and encodes their results.
package processor

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Line is one non-blank input line with its 1-based number.
type Line struct {
	Number int
	Text   string
}

// Result is the outcome of converting one Line.
type Result[T any] struct {
	Line  Line
	Value T
	Err   error
}

// ReadLines splits r into trimmed lines, skipping blank ones and # comments.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, Line{Number: n, Text: text})
	}

	return lines, sc.Err()
}

// ProcessBatch applies fn to every line using up to concurrency workers.
// Results keep input order; a failing line only marks its own Result.
// Lines not started before ctx is done carry ctx.Err().
func ProcessBatch[T any](ctx context.Context, concurrency int, lines []Line, fn func(string) (T, error)) []Result[T] {
	if concurrency < 1 {
		concurrency = 1
	}

	start := time.Now()
	results := make([]Result[T], len(lines))
	done := make([]bool, len(lines))
	jobs := make(chan int, len(lines))

	go func() {
		defer close(jobs)
		for i := range lines {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res := Result[T]{Line: lines[idx]}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Value, res.Err = fn(lines[idx].Text)
				}
				if res.Err != nil {
					log.Trace().
						Err(res.Err).
						Int("line", res.Line.Number).
						Msg("Failed to convert line")
				}
				results[idx] = res
				done[idx] = true
			}
		}()
	}
	wg.Wait()

	failed := 0
	for i := range results {
		if !done[i] {
			results[i] = Result[T]{Line: lines[i], Err: ctx.Err()}
		}
		if results[i].Err != nil {
			failed++
		}
	}

	log.Debug().
		Int("lines", len(lines)).
		Int("failed", failed).
		Int("workers", concurrency).
		Dur("duration", time.Since(start)).
		Msg("Batch processed")

	return results
}
