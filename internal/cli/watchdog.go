package cli

import (
	"fmt"
	"log/slog"

	relacon "github.com/fjenner/relacon-go"
)

// Watchdog reads the watchdog setting, or writes it when a value is given.
type Watchdog struct {
	Value string `arg:"" optional:"" help:"Setting to apply: 0 (off), 1 (1s), 2 (10s) or 3 (1m)"`
}

func (w *Watchdog) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		if w.Value == "" {
			config, err := dev.Watchdog()
			if err != nil {
				return fmt.Errorf("failed to read watchdog setting: %w", err)
			}
			fmt.Printf("Watchdog setting: %s\n", config)
			return nil
		}

		value, err := parseNumber(w.Value, int64(relacon.WatchdogOff), int64(relacon.Watchdog1min))
		if err != nil {
			return err
		}
		if err := dev.SetWatchdog(relacon.WatchdogConfig(value)); err != nil {
			return fmt.Errorf("failed to set watchdog: %w", err)
		}
		return nil
	})
}
