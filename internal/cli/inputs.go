package cli

import (
	"fmt"
	"log/slog"

	relacon "github.com/fjenner/relacon-go"
)

// Inputs reads the digital input port and prints it as a bitmask.
type Inputs struct{}

func (i *Inputs) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		value, err := dev.ReadInputs()
		if err != nil {
			return fmt.Errorf("failed to read digital inputs: %w", err)
		}
		fmt.Printf("0x%02x\n", value)
		return nil
	})
}
