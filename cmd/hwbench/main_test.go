package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallScenario = `
[blinky]
cwidth = 3
periods = 2

[video.timing.horizontal]
active = 8
front_porch = 2
sync = 3
back_porch = 1

[video.timing.vertical]
active = 6
front_porch = 1
sync = 2
back_porch = 1

[i2c]
clk_div = 1

[[i2c.writes]]
reg = 0x0100
val = 0x01
`

func writeScenario(t *testing.T) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "small.toml")
	require.NoError(t, os.WriteFile(fn, []byte(smallScenario), 0644))
	return fn
}

func TestRun_list(t *testing.T) {
	var out, errs bytes.Buffer
	code := run([]string{"--list", "blinky_*", "i2c_writer"}, &out, &errs)
	require.Equal(t, 0, code, errs.String())
	assert.Equal(t, "blinky_smoke     blinky\nblinky_toggle    blinky\ni2c_writer       i2c\n", out.String())
}

func TestRun_all(t *testing.T) {
	dir := t.TempDir()
	var out, errs bytes.Buffer
	code := run([]string{"-s", writeScenario(t), "-o", dir, "--log-level=warn"}, &out, &errs)
	require.Equal(t, 0, code, "%s\n%s", out.String(), errs.String())
	assert.Contains(t, out.String(), "6/6 passed")

	pngs, err := filepath.Glob(filepath.Join(dir, "video_frame-*-frame.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 1)
}

func TestRun_errors(t *testing.T) {
	var out, errs bytes.Buffer
	assert.Equal(t, 2, run([]string{"--nope"}, &out, &errs))
	assert.Equal(t, 2, run([]string{"--list", "nothing*"}, &out, &errs))
	assert.Equal(t, 2, run([]string{"--scenario", filepath.Join(t.TempDir(), "missing.toml")}, &out, &errs))
	assert.Equal(t, 2, run([]string{"--log-level=loud"}, &out, &errs))
	assert.Equal(t, 0, run([]string{"--help"}, &out, &errs))
}

func TestRun_dump(t *testing.T) {
	var out, errs bytes.Buffer
	require.Equal(t, 0, run([]string{"--dump", "-s", writeScenario(t)}, &out, &errs))
	assert.Contains(t, out.String(), "CWidth: (int) 3")
}
