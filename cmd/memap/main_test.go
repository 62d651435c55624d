package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

const testMap = `SEGMENT ALLOCATION MAP

run origin  load origin   length   init length attrs members
----------  ----------- ---------- ----------- ----- -------
  000000c8  000000c8    00000c78   00000c78    r-x   .text
  00000d40  00000d40    00000100   00000100    r--   .rodata
  20000000  20000000    00000200   00000000    rw-   .bss
  20000200  20000200    00000400   00000000    rw-   .stack
`

func writeTestMap(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.map")
	if err := os.WriteFile(path, []byte(testMap), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestMissingMapFile(t *testing.T) {
	out, err := execute("does-not-exist.map")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such map file")
	assert.Empty(t, out, "no report content on a missing input")
}

func TestUnrecognizedMode(t *testing.T) {
	out, err := execute(writeTestMap(t), "bogus")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized mode")
	assert.Empty(t, out, "no partial report on a bad mode")
}

func TestSummaryDefault(t *testing.T) {
	out, err := execute(writeTestMap(t))
	assert.NoError(t, err)
	assert.Contains(t, out, "Memory usage for app.out (CC2340R5)")
	assert.Contains(t, out, "FLASH")
	assert.Contains(t, out, "RAM")
	assert.NotContains(t, out, "WARNING")
}

func TestJSONMode(t *testing.T) {
	out, err := execute(writeTestMap(t), "json")
	assert.NoError(t, err)
	assert.Equal(t, int64(3288), gjson.Get(out, "flash.used").Int())
	assert.Equal(t, int64(1536), gjson.Get(out, "ram.used").Int())
	assert.False(t, gjson.Get(out, "warnings.ram_warning").Bool())
	assert.False(t, gjson.Get(out, "warnings.flash_critical").Bool())
}

func TestDetailedMode(t *testing.T) {
	text := testMap + `
SECTION ALLOCATION MAP

.text      0    000000c8    00000c78
                000000c8    00001000     app.o (.text.hubble_adv_loop)
                000010c8    0000000a     app.o (.text.tick)
`
	path := filepath.Join(t.TempDir(), "fw.map")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(path, "detailed", "--top", "1")
	assert.NoError(t, err)
	assert.Contains(t, out, "hubble_adv_loop")
	assert.NotContains(t, out, "tick", "ranking must truncate to --top entries")
}

func TestDirectoryAsMapFile(t *testing.T) {
	out, err := execute(t.TempDir())
	assert.Error(t, err)
	assert.Empty(t, out)
}
