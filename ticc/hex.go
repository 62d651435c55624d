package ticc

import (
	"bytes"
	"io"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"

	"github.com/tmcu/go-ticc/ticc/config"
)

// Image is a programmed flash image decoded from the Intel hex
// artifact the build writes next to the map file.
type Image struct {
	segments []gohex.DataSegment
}

func OpenImage(name string) (*Image, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "could not read hex image")
	}
	return parseImage(bytes.NewReader(b))
}

func parseImage(r io.Reader) (*Image, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, errors.Wrap(err, "could not parse hex image")
	}
	return &Image{segments: mem.GetDataSegments()}, nil
}

func (i *Image) Segments() []gohex.DataSegment { return i.segments }

// ProgrammedBytes is the number of bytes the image programs, gaps
// between segments excluded.
func (i *Image) ProgrammedBytes() int64 {
	var n int64
	for _, s := range i.segments {
		n += int64(len(s.Data))
	}
	return n
}

// Span returns the lowest programmed address and one past the
// highest. An empty image spans (0, 0).
func (i *Image) Span() (start, end uint32) {
	for idx, s := range i.segments {
		segEnd := s.Address + uint32(len(s.Data))
		if idx == 0 || s.Address < start {
			start = s.Address
		}
		if segEnd > end {
			end = segEnd
		}
	}
	return start, end
}

// CheckFit reports an error when the image programs addresses outside
// the device's application flash area.
func (i *Image) CheckFit(layout *config.MemoryLayout) error {
	if len(i.segments) == 0 {
		return errors.New("image has no data segments")
	}
	start, end := i.Span()
	flashEnd := layout.AppBaseAddr + layout.FlashSize
	if start < layout.AppBaseAddr || end > flashEnd {
		return errors.Errorf("image spans %08x-%08x outside flash %08x-%08x",
			start, end, layout.AppBaseAddr, flashEnd)
	}
	return nil
}
