package cli

import (
	"fmt"
	"log/slog"
	"time"

	relacon "github.com/fjenner/relacon-go"
	"github.com/fjenner/relacon-go/internal/log"
)

// Raw sends an arbitrary protocol command. With --read the response report
// is collected and its payload printed. Payloads going over the wire can be
// hex dumped through --log.raw-file.
type Raw struct {
	Command string        `arg:"" help:"ASCII command to send (at most 7 bytes)"`
	Read    bool          `help:"Collect and print a response report"`
	Timeout time.Duration `help:"Response timeout; negative waits forever" default:"500ms"`
}

func (r *Raw) Run(globals *Globals, logger *slog.Logger, rawLogger log.RawLogger) error {
	return globals.Device.withDevice(logger, func(dev *relacon.Device) error {
		rawLogger.Log(true, []byte(r.Command))
		if err := dev.RawWrite(r.Command); err != nil {
			return fmt.Errorf("failed to send command: %w", err)
		}
		if !r.Read {
			return nil
		}

		buf := make([]byte, relacon.ReportLen-1)
		n, err := dev.RawRead(buf, r.Timeout)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		rawLogger.Log(false, buf[:n])
		fmt.Printf("%s\n", buf[:n])
		return nil
	})
}
