package cli

import (
	"fmt"
	"log/slog"

	relacon "github.com/fjenner/relacon-go"
)

// Debounce reads the debounce setting, or writes it when a value is given.
type Debounce struct {
	Value string `arg:"" optional:"" help:"Setting to apply: 0 (10ms), 1 (1ms) or 2 (100us)"`
}

func (d *Debounce) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		if d.Value == "" {
			config, err := dev.Debounce()
			if err != nil {
				return fmt.Errorf("failed to read debounce setting: %w", err)
			}
			fmt.Printf("Debounce setting: %s\n", config)
			return nil
		}

		value, err := parseNumber(d.Value, int64(relacon.Debounce10ms), int64(relacon.Debounce100us))
		if err != nil {
			return err
		}
		if err := dev.SetDebounce(relacon.DebounceConfig(value)); err != nil {
			return fmt.Errorf("failed to set debounce: %w", err)
		}
		return nil
	})
}
