package cli

import (
	"fmt"
	"log/slog"
	"math"

	relacon "github.com/fjenner/relacon-go"
)

// RelaysCommand groups the relay port subcommands.
type RelaysCommand struct {
	Get RelaysGet `cmd:"" help:"Read the relay port as a bitmask"`
	Set RelaysSet `cmd:"" help:"Write the relay port from a bitmask"`
}

// RelaysGet prints the relay port state.
type RelaysGet struct{}

func (r *RelaysGet) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		value, err := dev.ReadRelays()
		if err != nil {
			return fmt.Errorf("failed to read relays: %w", err)
		}
		fmt.Printf("0x%02x\n", value)
		return nil
	})
}

// RelaysSet applies a bitmask to all relays at once.
type RelaysSet struct {
	Value string `arg:"" help:"Bitmask to apply, one bit per relay (hex or decimal)"`
}

func (r *RelaysSet) Run(globals *Globals, logger *slog.Logger) error {
	value, err := parseNumber(r.Value, 0, math.MaxUint8)
	if err != nil {
		return err
	}
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		if err := dev.WriteRelays(uint8(value)); err != nil {
			return fmt.Errorf("failed to write relays: %w", err)
		}
		return nil
	})
}
