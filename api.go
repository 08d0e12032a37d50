package relacon

import (
	"fmt"
	"io"
	"log/slog"
)

// API is the entry point of the library. It owns a transport backend and
// produces device lists and open device handles from it. Create one with
// New and release it with Close.
type API struct {
	backend Backend
	logger  *slog.Logger
}

// New wraps a transport backend, typically hidapi.New or rawusb.New. A nil
// logger discards all log output.
func New(backend Backend, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &API{backend: backend, logger: logger}
}

// Close shuts down the owned backend. Any devices and lists created from
// this API must be closed first.
func (a *API) Close() error {
	return a.backend.Close()
}

// Devices enumerates the supported devices currently attached.
func (a *API) Devices() (*DeviceList, error) {
	return newDeviceList(a.backend, a.logger)
}

// Open opens the first attached device matching the filter. A zero vid or
// pid and an empty serial each match anything, so Open(0, 0, "") opens the
// first supported device found. Enumeration runs fresh on every call, which
// makes the identity values of a previously obtained DeviceInfo valid filter
// arguments no matter when their list was closed.
func (a *API) Open(vid, pid uint16, serial string) (*Device, error) {
	list, err := a.Devices()
	if err != nil {
		return nil, err
	}
	defer list.Close()

	rec, ok := list.findFirst(vid, pid, serial)
	if !ok {
		return nil, fmt.Errorf("%w (vid=%04x pid=%04x serial=%q)", ErrNoDevice, vid, pid, serial)
	}

	transport, err := rec.entry.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %04x:%04x: %w", rec.info.VendorID, rec.info.ProductID, err)
	}

	a.logger.Debug("opened device",
		"device", fmt.Sprintf("%04x:%04x", rec.info.VendorID, rec.info.ProductID),
		"serial", rec.info.SerialNumber)

	return &Device{transport: transport, info: rec.info}, nil
}
