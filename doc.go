// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwbench provides a naive hardware simulator used to run testbenches
against small digital designs written in Go.

Designs are composed from parts (logic gates, muxers, flip-flops, custom
components) into chips, using Go as a hardware description language. The
simulator is step based: every step, each component reads the current state of
all wires and writes the next one. A built-in clock signal, "clk", toggles
every half cycle.

The bench sub-package drives a design like a simulation-control framework
would: it sets inputs, waits on clock edges and checks outputs. Designs and
their testbenches live under designs/.
*/
package hwbench
