package cli

import (
	"fmt"
	"log/slog"

	relacon "github.com/fjenner/relacon-go"
)

// List prints the supported devices currently attached, filtered by the
// identity flags.
type List struct{}

func (l *List) Run(globals *Globals, logger *slog.Logger) error {
	vid, pid, serial, err := globals.Device.filter()
	if err != nil {
		return err
	}
	backend, err := globals.Device.newBackend(logger)
	if err != nil {
		return err
	}
	api := relacon.New(backend, logger)
	defer api.Close()

	list, err := api.Devices()
	if err != nil {
		return fmt.Errorf("failed to enumerate devices: %w", err)
	}
	defer list.Close()

	for info, ok := list.Next(); ok; info, ok = list.Next() {
		if vid != 0 && info.VendorID != vid {
			continue
		}
		if pid != 0 && info.ProductID != pid {
			continue
		}
		if serial != "" && info.SerialNumber != serial {
			continue
		}
		fmt.Printf("%04x:%04x: %s - %s (%s)\n",
			info.VendorID, info.ProductID,
			orPlaceholder(info.Manufacturer, "<NO MANUFACTURER>"),
			orPlaceholder(info.Product, "<NO PRODUCT>"),
			orPlaceholder(info.SerialNumber, "<NO SERIAL NUMBER>"))
		fmt.Printf("\t%d relays, %d inputs\n", info.NumRelays, info.NumInputs)
	}
	return nil
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
