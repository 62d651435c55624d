package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tmcu/go-ticc/ticc"
	"github.com/tmcu/go-ticc/ticc/config"
)

func newImageCmd() *cobra.Command {
	var (
		configPath string
		deviceName string
	)
	cmd := &cobra.Command{
		Use:   "image <hex_file>",
		Short: "Inspect a firmware hex image against the device flash layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := ticc.ParseDevice(deviceName)
			if err != nil {
				return err
			}
			var conf *config.DeviceConfig
			if configPath != "" {
				conf, err = ticc.LoadDeviceConfig(configPath)
				if err != nil {
					return err
				}
			}
			layout, err := ticc.LayoutFor(conf, dev)
			if err != nil {
				return err
			}
			img, err := ticc.OpenImage(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Image %s (%s)\n", filepath.Base(args[0]), dev)
			for _, seg := range img.Segments() {
				fmt.Fprintf(out, "  %08x  %s\n", seg.Address, ticc.FormatBytes(int64(len(seg.Data))))
			}
			fmt.Fprintf(out, "Programmed: %s of %s flash (%d%%)\n",
				ticc.FormatBytes(img.ProgrammedBytes()),
				ticc.FormatBytes(int64(layout.FlashSize)),
				ticc.Percent(img.ProgrammedBytes(), int64(layout.FlashSize)))
			if err := img.CheckFit(layout); err != nil {
				return err
			}
			fmt.Fprintln(out, "Image fits device flash")
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Pkl device config path (overrides the built-in table)")
	cmd.Flags().StringVar(&deviceName, "device", string(ticc.DefaultDevice), "target device")
	return cmd
}
