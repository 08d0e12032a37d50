package relacon

import (
	"fmt"
	"time"
)

// Device is an open handle to one relay board. It is obtained from API.Open
// and must be closed when no longer needed. A Device is not safe for
// concurrent use; the command/response exchange on the wire is strictly
// sequential and callers issue one operation at a time.
type Device struct {
	transport Transport
	info      DeviceInfo
	buf       Report
}

// Info returns the identity of the open device. The strings are owned copies
// and remain valid for the life of the handle.
func (d *Device) Info() DeviceInfo { return d.info }

// Close releases the underlying transport. The handle is unusable afterwards.
func (d *Device) Close() error { return d.transport.Close() }

// writeCommand formats one ASCII command and sends it as a report.
func (d *Device) writeCommand(format string, args ...any) error {
	rep, err := packCommand(fmt.Sprintf(format, args...))
	if err != nil {
		return err
	}
	d.buf = rep
	return d.transport.WriteReport(&d.buf)
}

// readNumeric collects the response to the last command and decodes it as a
// decimal value within the given inclusive range.
func (d *Device) readNumeric(min, max int64) (int64, error) {
	if err := d.transport.ReadReport(&d.buf, DefaultTimeout); err != nil {
		return 0, err
	}
	return parseNumeric(&d.buf, min, max)
}

// ReadInputs returns the digital input states as a bitmask, with PORT A in
// the low four bits and PORT B in the high four bits.
func (d *Device) ReadInputs() (uint8, error) {
	if err := d.writeCommand("PI"); err != nil {
		return 0, err
	}
	v, err := d.readNumeric(0, 255)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

// WriteRelay closes (assert true) or opens (assert false) a single relay.
// The index must be below the device's relay count. The command is
// write-only; the device sends no response.
func (d *Device) WriteRelay(relay uint8, assert bool) error {
	if uint(relay) >= d.info.NumRelays {
		return fmt.Errorf("%w: relay index %d out of range", ErrInvalidParam, relay)
	}
	if assert {
		return d.writeCommand("SK%d", relay)
	}
	return d.writeCommand("RK%d", relay)
}

// ReadRelay reports whether a single relay is currently closed.
func (d *Device) ReadRelay(relay uint8) (bool, error) {
	if uint(relay) >= d.info.NumRelays {
		return false, fmt.Errorf("%w: relay index %d out of range", ErrInvalidParam, relay)
	}
	if err := d.writeCommand("RPK%d", relay); err != nil {
		return false, err
	}
	v, err := d.readNumeric(0, 1)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// WriteRelays sets all relays at once from a bitmask, one bit per relay. The
// firmware parser requires exactly three zero-padded decimal digits for this
// command, unlike every other numeric command.
func (d *Device) WriteRelays(val uint8) error {
	return d.writeCommand("MK%03d", val)
}

// ReadRelays returns the current state of all relays as a bitmask.
func (d *Device) ReadRelays() (uint8, error) {
	if err := d.writeCommand("PK"); err != nil {
		return 0, err
	}
	v, err := d.readNumeric(0, 255)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

// EventCounter returns the accumulated transition count of one input's event
// counter, atomically clearing the counter in the same exchange when clear
// is set. The index must be below the device's input count.
func (d *Device) EventCounter(counter uint8, clear bool) (uint16, error) {
	if uint(counter) >= d.info.NumInputs {
		return 0, fmt.Errorf("%w: counter index %d out of range", ErrInvalidParam, counter)
	}
	verb := 'E'
	if clear {
		verb = 'C'
	}
	if err := d.writeCommand("R%c%d", verb, counter); err != nil {
		return 0, err
	}
	v, err := d.readNumeric(0, 65535)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// SetDebounce configures the input debounce window used by the event
// counters.
func (d *Device) SetDebounce(config DebounceConfig) error {
	if !config.valid() {
		return fmt.Errorf("%w: debounce setting %d out of range", ErrInvalidParam, uint8(config))
	}
	return d.writeCommand("DB%d", uint8(config))
}

// Debounce reads back the current debounce setting.
func (d *Device) Debounce() (DebounceConfig, error) {
	if err := d.writeCommand("DB"); err != nil {
		return 0, err
	}
	v, err := d.readNumeric(int64(Debounce10ms), int64(Debounce100us))
	if err != nil {
		return 0, err
	}
	return DebounceConfig(v), nil
}

// SetWatchdog configures the relay watchdog interval.
func (d *Device) SetWatchdog(config WatchdogConfig) error {
	if !config.valid() {
		return fmt.Errorf("%w: watchdog setting %d out of range", ErrInvalidParam, uint8(config))
	}
	return d.writeCommand("WD%d", uint8(config))
}

// Watchdog reads back the current watchdog setting.
func (d *Device) Watchdog() (WatchdogConfig, error) {
	if err := d.writeCommand("WD"); err != nil {
		return 0, err
	}
	v, err := d.readNumeric(int64(WatchdogOff), int64(Watchdog1min))
	if err != nil {
		return 0, err
	}
	return WatchdogConfig(v), nil
}

// RawWrite sends an arbitrary ASCII command, bypassing the typed operations.
// The command must fit the seven byte report payload.
func (d *Device) RawWrite(cmd string) error {
	if len(cmd) > reportDataLen {
		return fmt.Errorf("%w: command %q longer than %d bytes", ErrInvalidParam, cmd, reportDataLen)
	}
	rep, err := packCommand(cmd)
	if err != nil {
		return err
	}
	d.buf = rep
	return d.transport.WriteReport(&d.buf)
}

// RawRead reads one raw response into buf and returns the number of payload
// bytes copied, truncating when buf is too small. The device only responds
// to commands that solicit a response; reading without one pending blocks
// until the timeout elapses. A negative timeout blocks indefinitely.
func (d *Device) RawRead(buf []byte, timeout time.Duration) (int, error) {
	if err := d.transport.ReadReport(&d.buf, timeout); err != nil {
		return 0, err
	}
	return copy(buf, d.buf.Payload()), nil
}
