// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bench drives a design under test (DUT) simulated by hwbench the way
// a simulation-control framework does: a testbench sets inputs, waits for
// clock edges and checks outputs.
//
// The bench always rests on a falling edge of the clock. Values set on input
// ports are seen by the DUT on the next rising edge and outputs read by the
// bench reflect the state of the DUT after the last rising edge.
//
package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	hw "github.com/db47h/hwbench"
	"github.com/db47h/hwbench/hwlib"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultStepsPerCycle is the number of simulation steps per clock cycle used
// when Config.StepsPerCycle is 0.
//
const DefaultStepsPerCycle = 8

// Config holds the bench settings.
//
type Config struct {
	// Workers is the number of simulation goroutines. 0 means GOMAXPROCS.
	Workers int
	// StepsPerCycle is the number of simulation steps per clock cycle.
	StepsPerCycle uint
	// OutDir is the directory where artifacts are written. Artifacts are
	// disabled when empty.
	OutDir string
	// RunID identifies the run in artifact names and logs.
	RunID string
}

type signal struct {
	port Port
	pins []int // probe pins, output ports only
	v    int64 // driven value, input ports only
}

// A Bench wraps a DUT into a running circuit.
//
type Bench struct {
	name      string
	cfg       Config
	ctx       context.Context
	log       zerolog.Logger
	c         *hw.Circuit
	sigs      map[string]*signal
	cycle     int
	artifacts []string
}

// New builds a circuit with the DUT, a driver for every input port and a probe
// for every output port. The DUT part is connected with each port wired to
// the pin of the same name.
//
// Callers must call Close once the bench is no longer needed.
//
func New(ctx context.Context, name string, cfg Config, log zerolog.Logger, dut hw.NewPartFn, ports ...Port) (*Bench, error) {
	if cfg.StepsPerCycle == 0 {
		cfg.StepsPerCycle = DefaultStepsPerCycle
	}
	b := &Bench{
		name: name,
		cfg:  cfg,
		ctx:  ctx,
		log:  log.With().Str("bench", name).Logger(),
		sigs: make(map[string]*signal, len(ports)),
	}

	var conns string
	parts := make([]hw.Part, 0, len(ports)+1)
	for _, p := range ports {
		if p.Name == "" || p.Bits < 0 {
			return nil, errors.Errorf("%s: invalid port %+v", name, p)
		}
		if _, ok := b.sigs[p.Name]; ok {
			return nil, errors.Errorf("%s: duplicate port %q", name, p.Name)
		}
		s := &signal{port: p}
		b.sigs[p.Name] = s
		if conns != "" {
			conns += ", "
		}
		conns += p.conn(p.Name)

		if p.IsInput() {
			parts = append(parts, driver(s))
		} else {
			parts = append(parts, probe(s))
		}
	}
	parts = append(parts, dut(conns))

	c, err := hw.NewCircuit(cfg.Workers, cfg.StepsPerCycle, parts...)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	b.c = c
	c.Tick()
	b.log.Debug().Int("components", c.Size()).Uint("spc", c.SPC()).Msg("bench ready")
	return b, nil
}

func driver(s *signal) hw.Part {
	if s.port.Bits == 0 {
		return hwlib.Input(func() bool { return s.v != 0 })(s.port.conn("out"))
	}
	return hwlib.InputN(s.port.Bits, func() int64 { return s.v })(s.port.conn("out"))
}

// probe returns a part without components that only records the pin numbers
// of the signal so that the bench can read them directly.
func probe(s *signal) hw.Part {
	return (&hw.PartSpec{
		Name:   "probe_" + s.port.Name,
		Inputs: s.port.ioSpec("in"),
		Mount: func(sk *hw.Socket) []hw.Component {
			if s.port.Bits == 0 {
				s.pins = []int{sk.Pin("in")}
			} else {
				s.pins = sk.Bus("in", s.port.Bits)
			}
			return nil
		},
	}).NewPart(s.port.conn("in"))
}

// Name returns the bench name.
func (b *Bench) Name() string { return b.name }

// Log returns the bench logger.
func (b *Bench) Log() *zerolog.Logger { return &b.log }

// Cycle returns the number of rising edges since the bench was created.
func (b *Bench) Cycle() int { return b.cycle }

// Set sets the value driven on input port name. Values wider than the port are
// truncated.
//
func (b *Bench) Set(name string, v int64) error {
	s, ok := b.sigs[name]
	if !ok || !s.port.IsInput() {
		return unknownSignal(b.name, name)
	}
	if w := s.port.width(); w < 64 {
		v &= 1<<uint(w) - 1
	}
	s.v = v
	return nil
}

// Get returns the current value of a port. For input ports, this is the driven
// value.
//
func (b *Bench) Get(name string) (int64, error) {
	s, ok := b.sigs[name]
	if !ok {
		return 0, unknownSignal(b.name, name)
	}
	if s.port.IsInput() {
		return s.v, nil
	}
	return hwlib.Int64(b.c, s.pins), nil
}

// ClockCycles advances the simulation by n rising edges, then settles to the
// following falling edge.
//
func (b *Bench) ClockCycles(n int) error {
	for i := 0; i < n; i++ {
		if err := b.ctx.Err(); err != nil {
			return errors.Wrapf(err, "%s: cycle %d", b.name, b.cycle)
		}
		b.c.Tock()
		b.c.Tick()
		b.cycle++
	}
	return nil
}

// RisingEdge advances the simulation to the next rising edge and lets
// registered outputs settle. It is the same as ClockCycles(1).
//
func (b *Bench) RisingEdge() error {
	return b.ClockCycles(1)
}

// Reset asserts the input port name, holds it for the given number of cycles
// and deasserts it.
//
func (b *Bench) Reset(name string, cycles int) error {
	if err := b.Set(name, 1); err != nil {
		return err
	}
	b.log.Debug().Str("signal", name).Int("cycles", cycles).Msg("reset")
	if err := b.ClockCycles(cycles); err != nil {
		return err
	}
	return b.Set(name, 0)
}

// Expect checks that port name has the value want. On mismatch, it returns a
// *MismatchError with a message built from format and args.
//
func (b *Bench) Expect(name string, want int64, format string, args ...interface{}) error {
	got, err := b.Get(name)
	if err != nil {
		return err
	}
	if got != want {
		return &MismatchError{
			Bench:  b.name,
			Signal: name,
			Cycle:  b.cycle,
			Got:    got,
			Want:   want,
			Msg:    fmt.Sprintf(format, args...),
		}
	}
	return nil
}

// WaitFor runs the simulation until port name has the value want, checking
// once per cycle. It returns an error wrapping ErrTimeout if the value is not
// reached after limit cycles.
//
func (b *Bench) WaitFor(name string, want int64, limit int) error {
	for i := 0; ; i++ {
		got, err := b.Get(name)
		if err != nil {
			return err
		}
		if got == want {
			b.log.Debug().Str("signal", name).Int("cycles", i).Msg("wait done")
			return nil
		}
		if i == limit {
			return errors.Wrapf(ErrTimeout, "%s: %s = %#x after %d cycles, want %#x", b.name, name, got, limit, want)
		}
		if err = b.ClockCycles(1); err != nil {
			return err
		}
	}
}

// CreateArtifact creates the output file name for this run. The file is named
// <test>-<run id>-<name> in the configured output directory. It returns nil
// if artifacts are disabled.
//
func (b *Bench) CreateArtifact(name string) (io.WriteCloser, error) {
	if b.cfg.OutDir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(b.cfg.OutDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}
	fn := b.name
	if b.cfg.RunID != "" {
		fn += "-" + b.cfg.RunID
	}
	fn = filepath.Join(b.cfg.OutDir, fn+"-"+name)
	f, err := os.Create(fn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create artifact")
	}
	b.artifacts = append(b.artifacts, fn)
	b.log.Info().Str("file", fn).Msg("artifact")
	return f, nil
}

// Artifacts returns the paths of the artifacts created so far.
func (b *Bench) Artifacts() []string { return b.artifacts }

// Close releases the simulation resources.
//
func (b *Bench) Close() {
	if b.c != nil {
		b.c.Dispose()
		b.c = nil
	}
}
