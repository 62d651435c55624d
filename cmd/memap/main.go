package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tmcu/go-ticc/ticc"
)

var (
	logLevel string
	topCount int
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "memap <map_file> [summary|detailed|json]",
		Short:         "Report flash and RAM usage from a TI linker map file",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReport,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", `set the log level, e.g. "debug", "info", "warn", "error"`)
	cmd.Flags().IntVar(&topCount, "top", ticc.DefaultTopSymbols, "number of symbols in the detailed ranking")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return errors.Wrap(err, "could not parse log level")
		}
		logrus.SetLevel(lvl)
		return nil
	}
	cmd.AddCommand(newImageCmd())
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	mapPath := args[0]
	rawMode := string(ticc.ModeSummary)
	if len(args) == 2 {
		rawMode = args[1]
	}

	fi, err := os.Stat(mapPath)
	if err != nil || !fi.Mode().IsRegular() {
		return errors.Errorf("no such map file: %s", mapPath)
	}
	b, err := os.ReadFile(mapPath)
	if err != nil {
		return errors.Wrap(err, "could not read map file")
	}

	entries, err := ticc.ScanSegments(bytes.NewReader(b))
	if err != nil {
		return errors.Wrap(err, "could not scan map file")
	}
	usage := ticc.Aggregate(entries)
	logrus.Debugf("aggregated %d segment rows from %s", len(entries), mapPath)

	// The mode is validated only after the totals exist, so a bad
	// mode never leaves a partial report behind.
	mode, err := ticc.ParseMode(rawMode)
	if err != nil {
		return err
	}

	layout, err := ticc.LayoutFor(nil, ticc.DefaultDevice)
	if err != nil {
		return err
	}
	report := ticc.NewReport(mapPath, ticc.DefaultDevice, layout, usage)
	if mode == ticc.ModeDetailed {
		syms, err := ticc.ScanSymbols(bytes.NewReader(b))
		if err != nil {
			return errors.Wrap(err, "could not scan code section")
		}
		report.Symbols = ticc.TopSymbols(syms, topCount)
	}
	return report.Render(cmd.OutOrStdout(), mode)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}
