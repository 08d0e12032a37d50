package cli

import (
	"fmt"
	"log/slog"

	relacon "github.com/fjenner/relacon-go"
)

// RelayCommand groups the single-relay subcommands.
type RelayCommand struct {
	Set   RelaySet   `cmd:"" help:"Close (energize) a relay"`
	Clear RelayClear `cmd:"" help:"Open (release) a relay"`
	Get   RelayGet   `cmd:"" help:"Read the state of a relay"`
}

// RelaySet closes one relay.
type RelaySet struct {
	Index uint8 `arg:"" name:"relay" help:"Relay index"`
}

func (r *RelaySet) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		if err := dev.WriteRelay(r.Index, true); err != nil {
			return fmt.Errorf("failed to write relay: %w", err)
		}
		return nil
	})
}

// RelayClear opens one relay.
type RelayClear struct {
	Index uint8 `arg:"" name:"relay" help:"Relay index"`
}

func (r *RelayClear) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		if err := dev.WriteRelay(r.Index, false); err != nil {
			return fmt.Errorf("failed to write relay: %w", err)
		}
		return nil
	})
}

// RelayGet prints 1 when the relay is closed and 0 when it is open.
type RelayGet struct {
	Index uint8 `arg:"" name:"relay" help:"Relay index"`
}

func (r *RelayGet) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		closed, err := dev.ReadRelay(r.Index)
		if err != nil {
			return fmt.Errorf("failed to read relay: %w", err)
		}
		state := 0
		if closed {
			state = 1
		}
		fmt.Printf("%d\n", state)
		return nil
	})
}
