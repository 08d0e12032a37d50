package relacon

import (
	"fmt"
	"log/slog"
)

// DeviceInfo identifies one supported device found during enumeration. All
// fields are plain values that stay valid after the originating DeviceList is
// closed, so they can be fed back into API.Open any time later.
type DeviceInfo struct {
	// VendorID and ProductID are the USB identifiers of the device.
	VendorID  uint16
	ProductID uint16

	// SerialNumber, Manufacturer and Product are the USB string
	// descriptors. Any of them may be empty when the device does not
	// provide the descriptor or it could not be read.
	SerialNumber string
	Manufacturer string
	Product      string

	// NumRelays and NumInputs describe what the device model offers.
	NumRelays uint
	NumInputs uint
}

type deviceRecord struct {
	info  DeviceInfo
	entry Entry
}

// DeviceList is a single-pass cursor over the supported devices found by one
// enumeration. There is no rewind; call API.Devices again for a fresh pass.
// The list holds a backend snapshot open and must be closed when done.
type DeviceList struct {
	snapshot Snapshot
	records  []deviceRecord
	pos      int
	closed   bool
}

// newDeviceList walks a fresh backend snapshot, keeps the devices the
// capability table recognizes and decorates them with string descriptors.
// A device whose strings cannot be read stays in the list with empty
// strings; missing descriptors are data, not errors.
func newDeviceList(backend Backend, logger *slog.Logger) (*DeviceList, error) {
	snap, err := backend.Devices()
	if err != nil {
		return nil, fmt.Errorf("device enumeration failed: %w", err)
	}

	list := &DeviceList{snapshot: snap}
	for _, entry := range snap.Entries() {
		vid, pid := entry.VendorID(), entry.ProductID()
		caps, ok := LookupCapabilities(vid, pid)
		if !ok {
			logger.Debug("skipping unrecognized device",
				"device", fmt.Sprintf("%04x:%04x", vid, pid))
			continue
		}

		info := DeviceInfo{
			VendorID:  vid,
			ProductID: pid,
			NumRelays: caps.NumRelays,
			NumInputs: caps.NumInputs,
		}
		mfr, product, serial, err := entry.Strings()
		if err != nil {
			logger.Warn("could not read string descriptors",
				"device", fmt.Sprintf("%04x:%04x", vid, pid),
				"error", err)
		} else {
			info.Manufacturer = mfr
			info.Product = product
			info.SerialNumber = serial
		}

		list.records = append(list.records, deviceRecord{info: info, entry: entry})
	}

	return list, nil
}

// Next returns the next device in the list, or ok false once the list is
// exhausted or closed.
func (l *DeviceList) Next() (info DeviceInfo, ok bool) {
	if l.closed || l.pos >= len(l.records) {
		return DeviceInfo{}, false
	}
	info = l.records[l.pos].info
	l.pos++
	return info, true
}

// Close releases the backend snapshot. Devices from this list can no longer
// be opened afterwards; DeviceInfo values already handed out remain usable.
// Closing an already closed list is a no-op.
func (l *DeviceList) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.records = nil
	return l.snapshot.Close()
}

// findFirst returns the first record matching the identity filter. A zero
// vendor or product ID and an empty serial each match anything.
func (l *DeviceList) findFirst(vid, pid uint16, serial string) (deviceRecord, bool) {
	for _, rec := range l.records {
		if (vid == 0 || vid == rec.info.VendorID) &&
			(pid == 0 || pid == rec.info.ProductID) &&
			(serial == "" || serial == rec.info.SerialNumber) {
			return rec, true
		}
	}
	return deviceRecord{}, false
}
