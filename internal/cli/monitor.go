package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	relacon "github.com/fjenner/relacon-go"
)

// Monitor polls the digital inputs until interrupted. On a terminal the
// state rewrites a single status line; otherwise each change is printed on
// its own line.
type Monitor struct {
	Interval time.Duration `help:"Polling interval" default:"500ms"`
}

func (m *Monitor) Run(globals *Globals, logger *slog.Logger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		isTerminal := term.IsTerminal(int(os.Stdout.Fd()))

		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		var last uint8
		first := true
		for {
			value, err := dev.ReadInputs()
			if err != nil {
				if isTerminal && !first {
					fmt.Println()
				}
				return fmt.Errorf("failed to read digital inputs: %w", err)
			}
			if isTerminal {
				fmt.Printf("\rInputs: 0x%02x (%08b)", value, value)
			} else if first || value != last {
				fmt.Printf("Inputs: 0x%02x (%08b)\n", value, value)
			}
			last = value
			first = false

			select {
			case <-ctx.Done():
				if isTerminal {
					fmt.Println()
				}
				return nil
			case <-ticker.C:
			}
		}
	})
}
