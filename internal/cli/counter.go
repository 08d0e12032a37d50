package cli

import (
	"fmt"
	"log/slog"

	relacon "github.com/fjenner/relacon-go"
)

// Counter reads one input event counter and prints its value.
type Counter struct {
	Index uint8 `arg:"" name:"counter" help:"Event counter index"`
	Clear bool  `help:"Clear the counter in the same read"`
}

func (c *Counter) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		count, err := dev.EventCounter(c.Index, c.Clear)
		if err != nil {
			return fmt.Errorf("failed to read event counter: %w", err)
		}
		fmt.Printf("0x%04x\n", count)
		return nil
	})
}
