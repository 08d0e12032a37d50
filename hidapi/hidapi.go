// Package hidapi implements the relacon transport contract on top of the
// host's HID layer through hidapi. This is the default transport: it rides
// the kernel HID driver and needs no access beyond the device node itself.
package hidapi

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sstallion/go-hid"

	relacon "github.com/fjenner/relacon-go"
)

// Usage of the command/response report collection. Hosts whose HID
// enumeration carries no usage information report zero instead; both values
// pass the filter.
const reportCollectionUsage = 0x01

// Backend enumerates and opens devices through hidapi. Create one with New
// and release it with Close once every snapshot and transport is done.
type Backend struct {
	logger *slog.Logger
}

// New initializes the hidapi library. A nil logger discards log output.
func New(logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("%w: hidapi init: %v", relacon.ErrInternal, err)
	}
	return &Backend{logger: logger}, nil
}

// Close tears down the hidapi library.
func (b *Backend) Close() error {
	if err := hid.Exit(); err != nil {
		return fmt.Errorf("%w: hidapi exit: %v", relacon.ErrInternal, err)
	}
	return nil
}

// Devices snapshots the HID devices currently visible to the host, keeping
// the ones the capability table recognizes. Collections with a foreign usage
// are dropped on hosts that report usage information.
func (b *Backend) Devices() (relacon.Snapshot, error) {
	snap := &snapshot{}
	err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		if _, ok := relacon.LookupCapabilities(info.VendorID, info.ProductID); !ok {
			return nil
		}
		if info.Usage != 0 && info.Usage != reportCollectionUsage {
			b.logger.Debug("skipping collection with foreign usage",
				"device", fmt.Sprintf("%04x:%04x", info.VendorID, info.ProductID),
				"usage", fmt.Sprintf("%#04x", info.Usage))
			return nil
		}
		snap.entries = append(snap.entries, &entry{
			backend:   b,
			snap:      snap,
			path:      info.Path,
			vendorID:  info.VendorID,
			productID: info.ProductID,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: hid enumeration: %v", relacon.ErrInternal, err)
	}
	return snap, nil
}

type snapshot struct {
	entries []relacon.Entry
	closed  bool
}

func (s *snapshot) Entries() []relacon.Entry { return s.entries }

func (s *snapshot) Close() error {
	s.closed = true
	s.entries = nil
	return nil
}

type entry struct {
	backend   *Backend
	snap      *snapshot
	path      string
	vendorID  uint16
	productID uint16
}

func (e *entry) VendorID() uint16  { return e.vendorID }
func (e *entry) ProductID() uint16 { return e.productID }

// Strings reopens the device by path and queries each descriptor with its
// own small request. The bulk strings hidapi gathers during enumeration are
// useless on this hardware: the ADU218 firmware truncates the request
// wLength to 8 bits, so hidapi's long enumeration-time reads come back as
// empty strings. A descriptor the device does not carry comes back empty.
func (e *entry) Strings() (manufacturer, product, serial string, err error) {
	dev, err := hid.OpenPath(e.path)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: opening %s for string descriptors: %v",
			relacon.ErrInternal, e.path, err)
	}
	defer dev.Close()

	if s, err := dev.GetMfrStr(); err == nil {
		manufacturer = s
	}
	if s, err := dev.GetProductStr(); err == nil {
		product = s
	}
	if s, err := dev.GetSerialNbr(); err == nil {
		serial = s
	}
	return manufacturer, product, serial, nil
}

// Open opens the device by path. Transports from a closed snapshot are
// refused; the stored path may have been reassigned since.
func (e *entry) Open() (relacon.Transport, error) {
	if e.snap.closed {
		return nil, fmt.Errorf("%w: snapshot closed", relacon.ErrInternal)
	}
	dev, err := hid.OpenPath(e.path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", relacon.ErrInternal, e.path, err)
	}
	return &transport{dev: dev, logger: e.backend.logger}, nil
}

type transport struct {
	dev    *hid.Device
	logger *slog.Logger
}

// WriteReport sends one report, report ID leading.
func (t *transport) WriteReport(rep *relacon.Report) error {
	t.logger.Debug("report out", "data", fmt.Sprintf("% x", rep[:]))
	if _, err := t.dev.Write(rep[:]); err != nil {
		return fmt.Errorf("%w: hid write: %v", relacon.ErrDeviceIO, err)
	}
	return nil
}

// ReadReport blocks for one report. A negative timeout blocks indefinitely;
// otherwise an empty read within the bound reports ErrTimeout.
func (t *transport) ReadReport(rep *relacon.Report, timeout time.Duration) error {
	var (
		n   int
		err error
	)
	if timeout < 0 {
		n, err = t.dev.Read(rep[:])
	} else {
		n, err = t.dev.ReadWithTimeout(rep[:], timeout)
	}
	if err != nil {
		return fmt.Errorf("%w: hid read: %v", relacon.ErrDeviceIO, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no report within %v", relacon.ErrTimeout, timeout)
	}
	t.logger.Debug("report in", "data", fmt.Sprintf("% x", rep[:n]))
	return nil
}

// Close releases the HID handle.
func (t *transport) Close() error {
	if err := t.dev.Close(); err != nil {
		return fmt.Errorf("%w: hid close: %v", relacon.ErrInternal, err)
	}
	return nil
}
