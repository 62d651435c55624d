package ticc

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tmcu/go-ticc/ticc/config"
	"github.com/tmcu/go-ticc/ticc/config/device"
)

// Usage thresholds, in integer percent of region capacity.
const (
	WarnPercent = 75
	CritPercent = 90
)

// Mode selects the report presentation.
type Mode string

const (
	ModeSummary  Mode = "summary"
	ModeDetailed Mode = "detailed"
	ModeJSON     Mode = "json"
)

// ParseMode validates a mode argument against the closed mode set.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeSummary, ModeDetailed, ModeJSON:
		return m, nil
	}
	return "", errors.Errorf("unrecognized mode %q: use summary, detailed or json", s)
}

// RegionUsage is one fixed-capacity region with its accumulated usage.
type RegionUsage struct {
	Name     string
	Capacity int64
	Used     int64
}

func (r RegionUsage) Free() int64  { return r.Capacity - r.Used }
func (r RegionUsage) Percent() int { return Percent(r.Used, r.Capacity) }

// Warning and Critical are computed independently from the same
// percentage, so a critical region reports both as true.
func (r RegionUsage) Warning() bool  { return r.Percent() >= WarnPercent }
func (r RegionUsage) Critical() bool { return r.Percent() >= CritPercent }

// Report is the derived usage report for one build.
type Report struct {
	Device  string
	Build   string
	Usage   Usage
	Flash   RegionUsage
	RAM     RegionUsage
	Symbols []Symbol
}

// NewReport derives region usage from aggregated bucket totals and
// the device memory layout.
func NewReport(mapPath string, dev device.Device, layout *config.MemoryLayout, u Usage) *Report {
	return &Report{
		Device: dev.String(),
		Build:  buildName(mapPath),
		Usage:  u,
		Flash:  RegionUsage{Name: "FLASH", Capacity: int64(layout.FlashSize), Used: u.FlashUsed()},
		RAM:    RegionUsage{Name: "RAM", Capacity: int64(layout.RamSize), Used: u.RAMUsed()},
	}
}

// buildName maps the input map file onto the linker image it came
// from, e.g. app.map reports as app.out.
func buildName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".out"
}

// Render writes the report in the given mode. The mode must already
// be validated; an unknown mode produces no output.
func (r *Report) Render(w io.Writer, mode Mode) error {
	switch mode {
	case ModeSummary:
		r.renderSummary(w)
	case ModeDetailed:
		r.renderSummary(w)
		r.renderSymbols(w)
	case ModeJSON:
		return r.renderJSON(w)
	default:
		return errors.Errorf("unrecognized mode %q", mode)
	}
	return nil
}

type bucketRow struct {
	label string
	size  int64
}

func (r *Report) renderSummary(w io.Writer) {
	fmt.Fprintf(w, "Memory usage for %s (%s)\n\n", r.Build, r.Device)
	r.renderRegion(w, r.Flash, []bucketRow{
		{".text (code)", r.Usage.Text},
		{".const/.rodata", r.Usage.Const},
		{".cinit (init tables)", r.Usage.Cinit},
		{".data (load image)", r.Usage.Data},
	})
	r.renderRegion(w, r.RAM, []bucketRow{
		{".data", r.Usage.Data},
		{".bss", r.Usage.Bss},
		{".stack", r.Usage.Stack},
	})
	r.renderWarnings(w)
}

func (r *Report) renderRegion(w io.Writer, reg RegionUsage, rows []bucketRow) {
	fmt.Fprintf(w, "%-5s %s %3d%%  %s used, %s free of %s\n",
		reg.Name, progressBar(reg.Percent()), reg.Percent(),
		FormatBytes(reg.Used), FormatBytes(reg.Free()), FormatBytes(reg.Capacity))
	for _, row := range rows {
		if row.size == 0 {
			continue
		}
		fmt.Fprintf(w, "      %-22s %s\n", row.label, FormatBytes(row.size))
	}
	fmt.Fprintln(w)
}

func progressBar(pct int) string {
	const width = 20
	fill := pct * width / 100
	if fill > width {
		fill = width
	}
	if fill < 0 {
		fill = 0
	}
	return "[" + strings.Repeat("=", fill) + strings.Repeat(" ", width-fill) + "]"
}

// renderWarnings keeps the historical message set: RAM reports both
// thresholds, flash only the critical one, RAM first.
func (r *Report) renderWarnings(w io.Writer) {
	if r.RAM.Warning() {
		fmt.Fprintf(w, "WARNING: RAM usage at %d%% of capacity\n", r.RAM.Percent())
	}
	if r.RAM.Critical() {
		fmt.Fprintf(w, "CRITICAL: RAM usage at %d%%, reduce static allocations\n", r.RAM.Percent())
	}
	if r.Flash.Critical() {
		fmt.Fprintf(w, "CRITICAL: FLASH usage at %d%%, image is near capacity\n", r.Flash.Percent())
	}
}

func (r *Report) renderSymbols(w io.Writer) {
	fmt.Fprintf(w, "Top %d code symbols by size:\n", len(r.Symbols))
	for _, s := range r.Symbols {
		fmt.Fprintf(w, "  %-12s %s\n", FormatBytes(s.Size), s.Name)
	}
}

type jsonRegion struct {
	Total   int64 `json:"total"`
	Used    int64 `json:"used"`
	Free    int64 `json:"free"`
	Percent int   `json:"percent"`
}

type jsonFlash struct {
	jsonRegion
	Text  int64 `json:"text"`
	Const int64 `json:"const"`
	Cinit int64 `json:"cinit"`
	Data  int64 `json:"data"`
}

type jsonRAM struct {
	jsonRegion
	Data  int64 `json:"data"`
	Bss   int64 `json:"bss"`
	Stack int64 `json:"stack"`
}

type jsonWarnings struct {
	RAMWarning    bool `json:"ram_warning"`
	RAMCritical   bool `json:"ram_critical"`
	FlashWarning  bool `json:"flash_warning"`
	FlashCritical bool `json:"flash_critical"`
}

type jsonReport struct {
	Device    string       `json:"device"`
	Generated string       `json:"generated"`
	Build     string       `json:"build"`
	Flash     jsonFlash    `json:"flash"`
	RAM       jsonRAM      `json:"ram"`
	Warnings  jsonWarnings `json:"warnings"`
}

func (r *Report) renderJSON(w io.Writer) error {
	doc := jsonReport{
		Device:    r.Device,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Build:     r.Build,
		Flash: jsonFlash{
			jsonRegion: regionJSON(r.Flash),
			Text:       r.Usage.Text,
			Const:      r.Usage.Const,
			Cinit:      r.Usage.Cinit,
			Data:       r.Usage.Data,
		},
		RAM: jsonRAM{
			jsonRegion: regionJSON(r.RAM),
			Data:       r.Usage.Data,
			Bss:        r.Usage.Bss,
			Stack:      r.Usage.Stack,
		},
		Warnings: jsonWarnings{
			RAMWarning:    r.RAM.Warning(),
			RAMCritical:   r.RAM.Critical(),
			FlashWarning:  r.Flash.Warning(),
			FlashCritical: r.Flash.Critical(),
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

func regionJSON(r RegionUsage) jsonRegion {
	return jsonRegion{
		Total:   r.Capacity,
		Used:    r.Used,
		Free:    r.Free(),
		Percent: r.Percent(),
	}
}
