// Package rawusb implements the relacon transport contract directly on the
// USB interrupt endpoints through libusb, bypassing the host's HID layer.
// Opening a device claims its only interface, which detaches the kernel HID
// driver for as long as the transport is held. Use it where no usable HID
// stack exists or the HID layer gets in the way.
package rawusb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/gousb"

	relacon "github.com/fjenner/relacon-go"
)

// Fixed endpoint addresses of the report interface. Every supported device
// exposes a single interface with one interrupt endpoint per direction.
const (
	epInAddr  = 0x81
	epOutAddr = 0x01
)

// Backend enumerates and opens devices through libusb. Create one with New
// and release it with Close once every snapshot and transport is done.
type Backend struct {
	ctx    *gousb.Context
	logger *slog.Logger
}

// New creates a libusb context. A nil logger discards log output.
func New(logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Backend{ctx: gousb.NewContext(), logger: logger}, nil
}

// Close releases the libusb context.
func (b *Backend) Close() error {
	if err := b.ctx.Close(); err != nil {
		return fmt.Errorf("%w: libusb context close: %v", relacon.ErrInternal, err)
	}
	return nil
}

// Devices opens every attached device the capability table recognizes and
// snapshots the handles. Unlike the HID layer there is no metadata to
// filter on beyond the vendor and product IDs, so recognition is the whole
// filter here. The snapshot owns the handles; entries never claimed through
// Open are released when the snapshot closes.
func (b *Backend) Devices() (relacon.Snapshot, error) {
	devs, err := b.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		_, ok := relacon.LookupCapabilities(uint16(desc.Vendor), uint16(desc.Product))
		return ok
	})
	if err != nil {
		// OpenDevices can fail on one device and still return the rest.
		if len(devs) == 0 {
			return nil, fmt.Errorf("%w: libusb enumeration: %v", relacon.ErrInternal, err)
		}
		b.logger.Warn("some devices could not be opened", "error", err)
	}

	snap := &snapshot{}
	for _, dev := range devs {
		snap.entries = append(snap.entries, &entry{backend: b, snap: snap, dev: dev})
	}
	return snap, nil
}

type snapshot struct {
	entries []*entry
	closed  bool
}

func (s *snapshot) Entries() []relacon.Entry {
	out := make([]relacon.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e
	}
	return out
}

// Close releases every handle not claimed by a transport.
func (s *snapshot) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var firstErr error
	for _, e := range s.entries {
		if e.claimed {
			continue
		}
		if err := e.dev.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%w: closing device: %v", relacon.ErrInternal, err)
		}
	}
	s.entries = nil
	return firstErr
}

type entry struct {
	backend *Backend
	snap    *snapshot
	dev     *gousb.Device
	claimed bool
}

func (e *entry) VendorID() uint16  { return uint16(e.dev.Desc.Vendor) }
func (e *entry) ProductID() uint16 { return uint16(e.dev.Desc.Product) }

func (e *entry) label() string {
	return fmt.Sprintf("%04x:%04x", uint16(e.dev.Desc.Vendor), uint16(e.dev.Desc.Product))
}

// Strings reads the manufacturer, product and serial number descriptors
// through the already held handle. A descriptor the device does not carry
// or refuses to serve comes back empty.
func (e *entry) Strings() (manufacturer, product, serial string, err error) {
	if s, err := e.dev.Manufacturer(); err == nil {
		manufacturer = s
	} else {
		e.backend.logger.Debug("no manufacturer descriptor", "device", e.label(), "error", err)
	}
	if s, err := e.dev.Product(); err == nil {
		product = s
	} else {
		e.backend.logger.Debug("no product descriptor", "device", e.label(), "error", err)
	}
	if s, err := e.dev.SerialNumber(); err == nil {
		serial = s
	} else {
		e.backend.logger.Debug("no serial number descriptor", "device", e.label(), "error", err)
	}
	return manufacturer, product, serial, nil
}

// Open detaches any kernel driver, claims the report interface and resolves
// its endpoints. The handle is owned by the returned transport from here
// on; closing the snapshot leaves it alone.
func (e *entry) Open() (relacon.Transport, error) {
	if e.snap.closed {
		return nil, fmt.Errorf("%w: snapshot closed", relacon.ErrInternal)
	}
	if e.claimed {
		return nil, fmt.Errorf("%w: device already claimed", relacon.ErrInternal)
	}

	if err := e.dev.SetAutoDetach(true); err != nil {
		return nil, fmt.Errorf("%w: auto detach: %v", relacon.ErrInternal, err)
	}
	cfg, err := e.dev.Config(1)
	if err != nil {
		return nil, fmt.Errorf("%w: selecting configuration: %v", relacon.ErrInternal, err)
	}
	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		return nil, fmt.Errorf("%w: claiming interface: %v", relacon.ErrInternal, err)
	}
	epIn, err := intf.InEndpoint(epInAddr & 0x0f)
	if err != nil {
		intf.Close()
		cfg.Close()
		return nil, fmt.Errorf("%w: resolving IN endpoint: %v", relacon.ErrInternal, err)
	}
	epOut, err := intf.OutEndpoint(epOutAddr & 0x0f)
	if err != nil {
		intf.Close()
		cfg.Close()
		return nil, fmt.Errorf("%w: resolving OUT endpoint: %v", relacon.ErrInternal, err)
	}

	e.claimed = true
	return &transport{
		dev:    e.dev,
		cfg:    cfg,
		intf:   intf,
		epIn:   epIn,
		epOut:  epOut,
		logger: e.backend.logger,
	}, nil
}

type transport struct {
	dev    *gousb.Device
	cfg    *gousb.Config
	intf   *gousb.Interface
	epIn   *gousb.InEndpoint
	epOut  *gousb.OutEndpoint
	logger *slog.Logger
}

// WriteReport sends one report over the interrupt OUT endpoint. Writes
// carry no deadline; the device accepts reports as fast as the host sends
// them.
func (t *transport) WriteReport(rep *relacon.Report) error {
	t.logger.Debug("report out", "data", fmt.Sprintf("% x", rep[:]))
	if _, err := t.epOut.WriteContext(context.Background(), rep[:]); err != nil {
		return fmt.Errorf("%w: interrupt OUT transfer: %v", relacon.ErrDeviceIO, err)
	}
	return nil
}

// ReadReport blocks for one report on the interrupt IN endpoint. A negative
// timeout blocks indefinitely. Expiry of the bound reports ErrTimeout; any
// other transfer failure reports ErrDeviceIO.
func (t *transport) ReadReport(rep *relacon.Report, timeout time.Duration) error {
	ctx := context.Background()
	if timeout >= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	n, err := t.epIn.ReadContext(ctx, rep[:])
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(err, gousb.TransferTimedOut) ||
			errors.Is(err, gousb.TransferCancelled) {
			return fmt.Errorf("%w: no report within %v", relacon.ErrTimeout, timeout)
		}
		return fmt.Errorf("%w: interrupt IN transfer: %v", relacon.ErrDeviceIO, err)
	}
	t.logger.Debug("report in", "data", fmt.Sprintf("% x", rep[:n]))
	return nil
}

// Close releases the interface, the configuration and the device handle.
func (t *transport) Close() error {
	t.intf.Close()
	var firstErr error
	if err := t.cfg.Close(); err != nil {
		firstErr = fmt.Errorf("%w: releasing configuration: %v", relacon.ErrInternal, err)
	}
	if err := t.dev.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("%w: closing device: %v", relacon.ErrInternal, err)
	}
	return firstErr
}
