// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"context"
	"path"
	"time"

	hw "github.com/db47h/hwbench"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// A Test is a named testbench procedure for a design.
//
type Test struct {
	Name   string
	Design string
	DUT    hw.NewPartFn
	Ports  []Port
	Run    func(b *Bench) error
}

// Result is the outcome of a test run.
//
type Result struct {
	Test      string
	Design    string
	RunID     string
	Cycles    int
	Elapsed   time.Duration
	Artifacts []string
	Err       error
}

// Passed returns true if the test ran without error.
func (r *Result) Passed() bool { return r.Err == nil }

// NewRunID returns a new unique, time sortable run identifier.
func NewRunID() string { return ulid.Make().String() }

// RunTest runs a single test in a new bench. Panics raised by the DUT or the
// test procedure are reported as errors.
//
func RunTest(ctx context.Context, t Test, cfg Config, log zerolog.Logger) (res Result) {
	if cfg.RunID == "" {
		cfg.RunID = NewRunID()
	}
	res = Result{Test: t.Name, Design: t.Design, RunID: cfg.RunID}
	log = log.With().Str("test", t.Name).Str("run", cfg.RunID).Logger()

	start := time.Now()
	var b *Bench
	defer func() {
		if r := recover(); r != nil {
			res.Err = errors.Errorf("%s: panic: %v", t.Name, r)
		}
		res.Elapsed = time.Since(start)
		if b != nil {
			res.Cycles = b.Cycle()
			res.Artifacts = b.Artifacts()
			b.Close()
		}
		ev := log.Info()
		if res.Err != nil {
			ev = log.Error().Err(res.Err)
		}
		ev.Int("cycles", res.Cycles).Dur("elapsed", res.Elapsed).Bool("passed", res.Err == nil).Msg("test done")
	}()

	log.Info().Str("design", t.Design).Msg("test start")
	var err error
	if b, err = New(ctx, t.Name, cfg, log, t.DUT, t.Ports...); err != nil {
		res.Err = err
		return res
	}
	res.Err = t.Run(b)
	return res
}

// Match returns the tests whose name matches any of the glob patterns (see
// path.Match). All tests match if no pattern is given.
//
func Match(tests []Test, patterns ...string) ([]Test, error) {
	if len(patterns) == 0 {
		return tests, nil
	}
	var out []Test
	for _, t := range tests {
		for _, p := range patterns {
			ok, err := path.Match(p, t.Name)
			if err != nil {
				return nil, errors.Wrapf(err, "bad pattern %q", p)
			}
			if ok {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}
