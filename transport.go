package relacon

import "time"

// Backend is a low-level transport capable of discovering and driving
// supported devices. Two implementations ship with this module: package
// hidapi speaks managed HID reports through the platform HID layer, and
// package rawusb issues raw interrupt transfers on the device's fixed
// endpoints. Both satisfy the same contract and are interchangeable.
type Backend interface {
	// Devices takes a snapshot of the candidate devices currently attached.
	// The snapshot owns any OS resources it acquired and must be closed.
	Devices() (Snapshot, error)

	// Close shuts the backend down. No snapshot or transport obtained from
	// the backend may be used afterwards.
	Close() error
}

// Snapshot is one enumeration pass over the attached devices. Entries are
// only valid while the snapshot is open; opening an entry after the snapshot
// is closed fails.
type Snapshot interface {
	Entries() []Entry
	Close() error
}

// Entry is one candidate device within a snapshot.
type Entry interface {
	VendorID() uint16
	ProductID() uint16

	// Strings fetches the manufacturer, product and serial number string
	// descriptors. Descriptors the device does not provide come back empty;
	// an error means none of them could be read at all.
	Strings() (manufacturer, product, serial string, err error)

	// Open claims the device for exclusive report I/O. Fails wrapping
	// ErrInternal if the device cannot be claimed, for example when another
	// driver holds it or the snapshot has been closed.
	Open() (Transport, error)
}

// Transport is an open device handle moving fixed-size reports. Calls block
// until completion, failure, or (for reads) timeout expiry. A Transport is
// not safe for concurrent use.
type Transport interface {
	// WriteReport transmits one report. Failures wrap ErrDeviceIO.
	WriteReport(rep *Report) error

	// ReadReport blocks until a report arrives or the timeout elapses.
	// A negative timeout blocks indefinitely. No report within the bound
	// wraps ErrTimeout; transport failures wrap ErrDeviceIO. The two are
	// always distinguishable via errors.Is.
	ReadReport(rep *Report, timeout time.Duration) error

	// Close releases the device. Call at most once.
	Close() error
}
