package ticc

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Markers bounding the segment allocation listing of a TI ARM linker
// map file. The listing is pattern matched, not validated: rows that
// do not look like allocated sections are skipped, and a map without
// the marker simply yields no entries.
const (
	segmentMapMarker = "SEGMENT ALLOCATION MAP"
	sectionMapMarker = "SECTION ALLOCATION MAP"
	zeroLengthMark   = "00000000"
)

type scanState int

const (
	stateOutside scanState = iota
	stateSegmentMap
	stateCodeSection
)

// SegmentEntry is one allocated section row from the segment map.
type SegmentEntry struct {
	Section string
	Size    int64
}

var sectionNameRe = regexp.MustCompile(`^\.[a-z][a-z0-9_:]*$`)

// ScanSegments extracts a (section, size) pair for every allocated,
// non-zero-length section row inside the segment allocation map.
func ScanSegments(r io.Reader) ([]SegmentEntry, error) {
	var entries []SegmentEntry
	state := stateOutside
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		switch state {
		case stateOutside:
			if strings.Contains(line, segmentMapMarker) {
				state = stateSegmentMap
			}
		case stateSegmentMap:
			if strings.Contains(line, sectionMapMarker) {
				state = stateOutside
				continue
			}
			if e, ok := parseSegmentRow(line); ok {
				entries = append(entries, e)
			}
		}
	}
	return entries, sc.Err()
}

// parseSegmentRow reads a member row of the segment map. The row
// layout is run-origin, load-origin, length, init-length, attrs and a
// trailing section name. Length is hexadecimal.
func parseSegmentRow(line string) (SegmentEntry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return SegmentEntry{}, false
	}
	name := fields[len(fields)-1]
	if !sectionNameRe.MatchString(name) {
		return SegmentEntry{}, false
	}
	if fields[2] == zeroLengthMark {
		return SegmentEntry{}, false
	}
	size, err := strconv.ParseInt(fields[2], 16, 64)
	if err != nil {
		return SegmentEntry{}, false
	}
	return SegmentEntry{Section: name, Size: size}, true
}
