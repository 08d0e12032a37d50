package relacon_test

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	relacon "github.com/fjenner/relacon-go"
)

// fakeDesc describes one simulated device attached to a fakeBackend.
type fakeDesc struct {
	vid          uint16
	pid          uint16
	manufacturer string
	product      string
	serial       string
	stringsErr   error
}

// fakeBackend implements relacon.Backend over a set of simulated devices.
// Every call to Devices produces a fresh snapshot, mirroring how the real
// backends re-enumerate the bus. The transport double behind the most
// recently opened entry is kept in last so tests can reach the simulated
// firmware state.
type fakeBackend struct {
	descs      []fakeDesc
	devicesErr error

	snapshots []*fakeSnapshot
	last      *fakeTransport
}

// standardBackend returns a backend populated with one device of each
// supported model.
func standardBackend() *fakeBackend {
	return &fakeBackend{descs: []fakeDesc{
		{vid: relacon.VendorIDOnTrak, pid: relacon.ProductIDADU208, manufacturer: "OnTrak", product: "ADU208", serial: "A02488"},
		{vid: relacon.VendorIDOnTrak, pid: relacon.ProductIDADU218, manufacturer: "OnTrak", product: "ADU218", serial: "B45871"},
		{vid: relacon.VendorIDPidCodes, pid: relacon.ProductIDRelacon, manufacturer: "Relacon", product: "Relay Controller", serial: "RC0001"},
	}}
}

func (b *fakeBackend) Devices() (relacon.Snapshot, error) {
	if b.devicesErr != nil {
		return nil, b.devicesErr
	}
	snap := &fakeSnapshot{}
	for i := range b.descs {
		snap.entries = append(snap.entries, &fakeEntry{backend: b, snap: snap, desc: b.descs[i]})
	}
	b.snapshots = append(b.snapshots, snap)
	return snap, nil
}

func (b *fakeBackend) Close() error { return nil }

// openSnapshots counts the snapshots handed out that have not been closed.
func (b *fakeBackend) openSnapshots() int {
	n := 0
	for _, snap := range b.snapshots {
		if !snap.closed {
			n++
		}
	}
	return n
}

type fakeSnapshot struct {
	entries []relacon.Entry
	closed  bool
}

func (s *fakeSnapshot) Entries() []relacon.Entry { return s.entries }

func (s *fakeSnapshot) Close() error {
	s.closed = true
	return nil
}

type fakeEntry struct {
	backend *fakeBackend
	snap    *fakeSnapshot
	desc    fakeDesc
}

func (e *fakeEntry) VendorID() uint16  { return e.desc.vid }
func (e *fakeEntry) ProductID() uint16 { return e.desc.pid }

func (e *fakeEntry) Strings() (string, string, string, error) {
	if e.desc.stringsErr != nil {
		return "", "", "", e.desc.stringsErr
	}
	return e.desc.manufacturer, e.desc.product, e.desc.serial, nil
}

func (e *fakeEntry) Open() (relacon.Transport, error) {
	if e.snap.closed {
		return nil, fmt.Errorf("%w: snapshot closed", relacon.ErrInternal)
	}
	tr := &fakeTransport{}
	e.backend.last = tr
	return tr, nil
}

// fakeTransport simulates the board firmware. Commands written to it mutate
// the simulated relay, input and counter state and queue a response report
// for the commands the protocol answers. An empty queue reads back as a
// timeout, just like a silent device.
type fakeTransport struct {
	relays   uint8
	inputs   uint8
	counters [8]uint16
	debounce uint8
	watchdog uint8

	// mute suppresses the firmware simulation so tests can stage their own
	// response reports.
	mute bool

	cmds     []string
	queue    []relacon.Report
	writeErr error
	readErr  error
	closed   bool
}

func (t *fakeTransport) WriteReport(rep *relacon.Report) error {
	if t.writeErr != nil {
		return t.writeErr
	}
	cmd := string(rep.Payload())
	t.cmds = append(t.cmds, cmd)
	if !t.mute {
		t.exec(cmd)
	}
	return nil
}

func (t *fakeTransport) ReadReport(rep *relacon.Report, timeout time.Duration) error {
	if t.readErr != nil {
		return t.readErr
	}
	if len(t.queue) == 0 {
		return fmt.Errorf("%w: no report within %v", relacon.ErrTimeout, timeout)
	}
	*rep = t.queue[0]
	t.queue = t.queue[1:]
	return nil
}

func (t *fakeTransport) Close() error {
	t.closed = true
	return nil
}

// exec interprets one ASCII command the way the device firmware does.
func (t *fakeTransport) exec(cmd string) {
	switch {
	case cmd == "PI":
		t.pushPayload(strconv.Itoa(int(t.inputs)))
	case cmd == "PK":
		t.pushPayload(strconv.Itoa(int(t.relays)))
	case strings.HasPrefix(cmd, "MK"):
		// The firmware only accepts the relay mask as exactly three
		// zero-padded decimal digits.
		if len(cmd) != 5 {
			return
		}
		if v, err := strconv.Atoi(cmd[2:]); err == nil && v >= 0 && v <= 255 {
			t.relays = uint8(v)
		}
	case strings.HasPrefix(cmd, "SK"):
		if i, ok := portIndex(cmd[2:]); ok {
			t.relays |= 1 << i
		}
	case strings.HasPrefix(cmd, "RK"):
		if i, ok := portIndex(cmd[2:]); ok {
			t.relays &^= 1 << i
		}
	case strings.HasPrefix(cmd, "RPK"):
		if i, ok := portIndex(cmd[3:]); ok {
			t.pushPayload(strconv.Itoa(int(t.relays >> i & 1)))
		}
	case strings.HasPrefix(cmd, "RE"):
		if i, ok := portIndex(cmd[2:]); ok {
			t.pushPayload(strconv.Itoa(int(t.counters[i])))
		}
	case strings.HasPrefix(cmd, "RC"):
		if i, ok := portIndex(cmd[2:]); ok {
			t.pushPayload(strconv.Itoa(int(t.counters[i])))
			t.counters[i] = 0
		}
	case cmd == "DB":
		t.pushPayload(strconv.Itoa(int(t.debounce)))
	case strings.HasPrefix(cmd, "DB"):
		if v, err := strconv.Atoi(cmd[2:]); err == nil && v >= 0 && v <= 2 {
			t.debounce = uint8(v)
		}
	case cmd == "WD":
		t.pushPayload(strconv.Itoa(int(t.watchdog)))
	case strings.HasPrefix(cmd, "WD"):
		if v, err := strconv.Atoi(cmd[2:]); err == nil && v >= 0 && v <= 3 {
			t.watchdog = uint8(v)
		}
	}
}

// pushPayload queues a well-formed response report carrying the payload.
func (t *fakeTransport) pushPayload(s string) {
	var rep relacon.Report
	rep[0] = relacon.ReportID
	copy(rep[1:], s)
	t.queue = append(t.queue, rep)
}

// pushRaw queues a verbatim response report.
func (t *fakeTransport) pushRaw(rep relacon.Report) {
	t.queue = append(t.queue, rep)
}

func portIndex(s string) (uint, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 7 {
		return 0, false
	}
	return uint(v), true
}
