// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrTimeout is returned (wrapped) by WaitFor when a signal does not reach the
// expected value within the cycle limit.
//
var ErrTimeout = errors.New("timeout")

// A MismatchError reports a signal value that differs from the expected one.
//
type MismatchError struct {
	Bench  string
	Signal string
	Cycle  int
	Got    int64
	Want   int64
	Msg    string
}

func (e *MismatchError) Error() string {
	s := fmt.Sprintf("%s: cycle %d: %s = %#x, want %#x", e.Bench, e.Cycle, e.Signal, e.Got, e.Want)
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

// unknownSignal returns the error for a signal name that is not a port of the
// design.
func unknownSignal(bench, name string) error {
	return errors.Errorf("%s: unknown signal %q", bench, name)
}
