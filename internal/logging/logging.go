// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logging sets up the zerolog loggers used by hwbench.
//
package logging

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a logger.
//
type Options struct {
	// Level is a zerolog level name. Defaults to "info".
	Level string
	// File is an optional log file. Records are written to it as JSON and
	// the file is rotated by size.
	File string
	// Out receives human readable records. Defaults to os.Stderr.
	Out io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger configured by opts. The returned io.Closer releases
// the log file, if any.
//
func New(app string, opts Options) (zerolog.Logger, io.Closer, error) {
	lvl := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrapf(err, "invalid log level %q", opts.Level)
		}
		lvl = l
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	var w io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(out),
	}
	var c io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 4,
			MaxAge:     180, // days
			Compress:   true,
		}
		w = zerolog.MultiLevelWriter(w, lj)
		c = lj
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("app", app).Logger(), c, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
