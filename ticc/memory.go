package ticc

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tmcu/go-ticc/ticc/config"
	"github.com/tmcu/go-ticc/ticc/config/device"
)

// DefaultDevice is the launchpad MCU the sample firmware targets.
const DefaultDevice = device.CC2340R5

// Compiled-in layouts for the supported devices. The CC2340R5 flash
// figure excludes the CCFG sector, which the application image cannot
// use.
var defaultLayouts = map[device.Device]*config.MemoryLayout{
	device.CC2340R2:  {FlashSize: 262144, RamSize: 28672},
	device.CC2340R5:  {FlashSize: 512000, RamSize: 36864},
	device.CC2340R53: {FlashSize: 512000, RamSize: 36864},
}

// LoadDeviceConfig evaluates a Pkl device config. Layouts found there
// take precedence over the compiled-in table when passed to LayoutFor.
func LoadDeviceConfig(path string) (*config.DeviceConfig, error) {
	ctx := context.Background()
	conf, err := config.LoadFromPath(ctx, path)
	if err != nil {
		return nil, errors.Wrap(err, "could not load device config")
	}
	return conf, nil
}

// LayoutFor resolves the memory layout for a device. conf may be nil.
func LayoutFor(conf *config.DeviceConfig, dev device.Device) (*config.MemoryLayout, error) {
	if conf != nil {
		if layout, ok := conf.Layouts[dev]; ok {
			return layout, nil
		}
	}
	if layout, ok := defaultLayouts[dev]; ok {
		return layout, nil
	}
	return nil, errors.Errorf("device is not registered: %s", dev)
}

// ParseDevice converts a device name given on the command line.
func ParseDevice(s string) (device.Device, error) {
	var dev device.Device
	if err := dev.UnmarshalBinary([]byte(s)); err != nil {
		return "", err
	}
	return dev, nil
}
