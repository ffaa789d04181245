// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hwbench runs the design testbenches.
//
//	hwbench [flags] [test-pattern...]
//
// Test patterns are shell globs matched against testbench names. All
// testbenches run when no pattern is given. The exit status is 1 if any
// testbench fails.
//
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/hwbench/bench"
	"github.com/db47h/hwbench/internal/config"
	"github.com/db47h/hwbench/internal/logging"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("hwbench", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.Flags(fs)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hwbench [flags] [test-pattern...]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	rt, err := config.Load(viper.New(), fs)
	if err != nil {
		fmt.Fprintln(stderr, "hwbench:", err)
		return 2
	}
	log, lc, err := logging.New("hwbench", logging.Options{Level: rt.LogLevel, File: rt.LogFile, Out: stderr})
	if err != nil {
		fmt.Fprintln(stderr, "hwbench:", err)
		return 2
	}
	defer lc.Close()
	if e := log.Debug(); e.Enabled() {
		e.Msg("runtime settings:\n" + spew.Sdump(rt))
	}

	scn, err := config.LoadScenario(rt.Scenario)
	if err != nil {
		log.Error().Err(err).Msg("scenario")
		return 2
	}
	if rt.Dump {
		spew.Fdump(stdout, scn)
		return 0
	}
	tests, err := scn.Tests()
	if err != nil {
		log.Error().Err(err).Msg("failed to build testbenches")
		return 2
	}
	sel, err := bench.Match(tests, fs.Args()...)
	if err != nil {
		log.Error().Err(err).Msg("")
		return 2
	}
	if len(sel) == 0 {
		log.Error().Strs("patterns", fs.Args()).Msg("no matching testbench")
		return 2
	}
	if rt.List {
		for _, t := range sel {
			fmt.Fprintf(stdout, "%-16s %s\n", t.Name, t.Design)
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if failed := runTests(ctx, sel, &rt, log, stdout); failed > 0 {
		return 1
	}
	return 0
}

func runTests(ctx context.Context, tests []bench.Test, rt *config.Runtime, log zerolog.Logger, w io.Writer) int {
	runID := bench.NewRunID()
	log.Info().Str("run", runID).Int("tests", len(tests)).Msg("starting")

	failed := 0
	for _, t := range tests {
		res := bench.RunTest(ctx, t, rt.Bench(runID), log)
		status := "PASS"
		if !res.Passed() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s  %-16s %10d cycles  %v\n", status, res.Test, res.Cycles, res.Elapsed)
		if res.Err != nil {
			fmt.Fprintf(w, "      %v\n", res.Err)
		}
		for _, a := range res.Artifacts {
			fmt.Fprintf(w, "      artifact: %s\n", a)
		}
		if errors.Is(res.Err, context.Canceled) {
			break
		}
	}
	fmt.Fprintf(w, "%d/%d passed (run %s)\n", len(tests)-failed, len(tests), runID)
	return failed
}
