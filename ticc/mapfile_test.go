package ticc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleMap = `******************************************************************************
             TI ARM Linker Unix v20.2.5
******************************************************************************

MEMORY CONFIGURATION

         name            origin    length      used     unused   attr
----------------------  --------  ---------  --------  --------  ----
  FLASH                 00000000   0007d000  00000d78  0007c288  RWIX
  SRAM                  20000000   00009000  00000600  00008a00  RWIX

SEGMENT ALLOCATION MAP

run origin  load origin   length   init length attrs members
----------  ----------- ---------- ----------- ----- -------
00000000    00000000    00000d78   00000d78    r-x
  00000000  00000000    000000c8   000000c8    r--   .intvecs
  000000c8  000000c8    00000c78   00000c78    r-x   .text
  00000d40  00000d40    00000100   00000100    r--   .rodata
  00000e40  00000e40    00000000   00000000    r--   .cinit
20000000    20000000    00000600   00000000    rw-
  20000000  20000000    00000200   00000000    rw-   .bss
  20000200  20000200    00000400   00000000    rw-   .stack

SECTION ALLOCATION MAP

 output                                  attributes/
section   page    origin      length       input sections
--------  ----  ----------  ----------   ----------------
.text      0    000000c8    00000c78
                000000c8    00000a00     app.o (.text.main)
                00000ac8    00000268     driverlib.a : setup.o (.text:SetupTrimDevice)
                00000d30    00000010     rts.lib : memset.o (.text)

.rodata    0    00000d40    00000100
                00000d40    00000100     app.o (.rodata.table)
`

func TestScanSegments(t *testing.T) {
	entries, err := ScanSegments(strings.NewReader(sampleMap))
	assert.NoError(t, err)
	assert.Equal(t, []SegmentEntry{
		{Section: ".intvecs", Size: 0xc8},
		{Section: ".text", Size: 0xc78},
		{Section: ".rodata", Size: 0x100},
		{Section: ".bss", Size: 0x200},
		{Section: ".stack", Size: 0x400},
	}, entries)
}

func TestScanSegmentsSkipsZeroLength(t *testing.T) {
	entries, err := ScanSegments(strings.NewReader(sampleMap))
	assert.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, ".cinit", e.Section, "zero-length sections must be skipped")
		assert.Greater(t, e.Size, int64(0))
	}
}

func TestScanSegmentsWithoutMarker(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		entries, err := ScanSegments(strings.NewReader(""))
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("marker missing", func(t *testing.T) {
		text := "  000000c8  000000c8  00000c78  00000c78  r-x  .text\n"
		entries, err := ScanSegments(strings.NewReader(text))
		assert.NoError(t, err)
		assert.Empty(t, entries, "rows outside the segment map are ignored")
	})
}

func TestScanSegmentsStopsAtSectionMap(t *testing.T) {
	text := `SEGMENT ALLOCATION MAP

  000000c8  000000c8  00000100  00000100  r-x  .text

SECTION ALLOCATION MAP

  00000d40  00000d40  00000200  00000200  r--  .rodata
`
	entries, err := ScanSegments(strings.NewReader(text))
	assert.NoError(t, err)
	assert.Equal(t, []SegmentEntry{{Section: ".text", Size: 0x100}}, entries)
}

func TestParseSegmentRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want SegmentEntry
		ok   bool
	}{
		{
			name: "member row",
			line: "  000000c8  000000c8    00000c78   00000c78    r-x   .text",
			want: SegmentEntry{Section: ".text", Size: 0xc78},
			ok:   true,
		},
		{
			name: "segment header row has no section name",
			line: "00000000    00000000    00000d78   00000d78    r-x",
			ok:   false,
		},
		{
			name: "zero length marker",
			line: "  00000e40  00000e40    00000000   00000000    r--   .cinit",
			ok:   false,
		},
		{
			name: "uppercase section is not a section token",
			line: "  00000e40  00000e40    00000010   00000010    r--   .TI.ramfunc",
			ok:   false,
		},
		{
			name: "divider row",
			line: "----------  ----------- ---------- ----------- ----- -------",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSegmentRow(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
