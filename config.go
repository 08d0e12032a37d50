package relacon

import "fmt"

// DebounceConfig selects the filtering window applied to digital input
// transitions before they increment the event counters.
type DebounceConfig uint8

const (
	Debounce10ms  DebounceConfig = 0
	Debounce1ms   DebounceConfig = 1
	Debounce100us DebounceConfig = 2
)

func (c DebounceConfig) valid() bool { return c <= Debounce100us }

func (c DebounceConfig) String() string {
	switch c {
	case Debounce10ms:
		return "10ms"
	case Debounce1ms:
		return "1ms"
	case Debounce100us:
		return "100us"
	}
	return fmt.Sprintf("DebounceConfig(%d)", uint8(c))
}

// WatchdogConfig selects the device watchdog interval. While the watchdog is
// enabled the device opens all relays and disables itself if no host command
// arrives before the interval elapses; every host command resets the timer.
type WatchdogConfig uint8

const (
	WatchdogOff  WatchdogConfig = 0
	Watchdog1s   WatchdogConfig = 1
	Watchdog10s  WatchdogConfig = 2
	Watchdog1min WatchdogConfig = 3
)

func (c WatchdogConfig) valid() bool { return c <= Watchdog1min }

func (c WatchdogConfig) String() string {
	switch c {
	case WatchdogOff:
		return "off"
	case Watchdog1s:
		return "1s"
	case Watchdog10s:
		return "10s"
	case Watchdog1min:
		return "1m"
	}
	return fmt.Sprintf("WatchdogConfig(%d)", uint8(c))
}
