// Package cli defines the relaconctl command grammar for kong.
package cli

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	relacon "github.com/fjenner/relacon-go"
	"github.com/fjenner/relacon-go/hidapi"
	"github.com/fjenner/relacon-go/rawusb"
)

// CLI is the top-level command grammar.
type CLI struct {
	Globals

	Config string `help:"Path to a configuration file" env:"RELACONCTL_CONFIG"`

	List      List          `cmd:"" help:"List attached devices"`
	Inputs    Inputs        `cmd:"" help:"Read the digital input port"`
	Relay     RelayCommand  `cmd:"" help:"Operate a single relay"`
	Relays    RelaysCommand `cmd:"" help:"Operate all relays as a port"`
	Counter   Counter       `cmd:"" help:"Read an input event counter"`
	Debounce  Debounce      `cmd:"" help:"Get or set the input debounce window"`
	Watchdog  Watchdog      `cmd:"" help:"Get or set the relay watchdog"`
	Raw       Raw           `cmd:"" help:"Send a raw protocol command"`
	Monitor   Monitor       `cmd:"" help:"Continuously poll the digital inputs"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Manage configuration files"`
}

// Globals carries the flags shared by every command. Config files populate
// these same keys.
type Globals struct {
	Log    LogConfig   `embed:"" prefix:"log."`
	Device DeviceFlags `embed:""`
}

// LogConfig configures the logger built at startup.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"RELACONCTL_LOG_LEVEL"`
	File    string `help:"Write logs to this file in addition to stderr" env:"RELACONCTL_LOG_FILE"`
	RawFile string `help:"Write a hex dump of raw report payloads to this file" env:"RELACONCTL_RAW_FILE"`
}

// DeviceFlags selects the transport backend and the target device for
// commands that talk to hardware. A zero vendor or product ID and an empty
// serial each match any device; the first match is used.
type DeviceFlags struct {
	Transport string `help:"Transport backend" enum:"hid,usb" default:"hid" env:"RELACONCTL_TRANSPORT"`
	Vid       string `help:"Open a device with this USB vendor ID (hex or decimal)" default:"0" env:"RELACONCTL_VID"`
	Pid       string `help:"Open a device with this USB product ID (hex or decimal)" default:"0" env:"RELACONCTL_PID"`
	Serial    string `help:"Open a device with this USB serial number" env:"RELACONCTL_SERIAL"`
}

// newBackend builds the selected transport backend.
func (f *DeviceFlags) newBackend(logger *slog.Logger) (relacon.Backend, error) {
	if f.Transport == "usb" {
		return rawusb.New(logger)
	}
	return hidapi.New(logger)
}

// filter parses the identity flags into Open arguments.
func (f *DeviceFlags) filter() (vid, pid uint16, serial string, err error) {
	v, err := parseNumber(f.Vid, 0, math.MaxUint16)
	if err != nil {
		return 0, 0, "", fmt.Errorf("--vid: %w", err)
	}
	p, err := parseNumber(f.Pid, 0, math.MaxUint16)
	if err != nil {
		return 0, 0, "", fmt.Errorf("--pid: %w", err)
	}
	return uint16(v), uint16(p), f.Serial, nil
}

// withDevice opens the selected device, runs fn against it and tears
// everything down again.
func (f *DeviceFlags) withDevice(logger *slog.Logger, fn func(*relacon.Device) error) error {
	vid, pid, serial, err := f.filter()
	if err != nil {
		return err
	}
	backend, err := f.newBackend(logger)
	if err != nil {
		return err
	}
	api := relacon.New(backend, logger)
	defer api.Close()

	dev, err := api.Open(vid, pid, serial)
	if err != nil {
		return fmt.Errorf("failed to open device: %w", err)
	}
	defer dev.Close()

	return fn(dev)
}

// parseNumber parses a decimal, hex (0x) or octal (0) value and checks it
// against an inclusive range.
func parseNumber(s string, min, max int64) (int64, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("not a numeric value: %q", s)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("value %d outside valid range [%d, %d]", v, min, max)
	}
	return v, nil
}
