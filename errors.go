package relacon

import "errors"

// Error kinds returned by this package. Operations wrap these with context;
// classify results with errors.Is.
var (
	// ErrInvalidParam reports an index, configuration value or command
	// argument outside its allowed range. Raised before any device I/O, so
	// the device state is untouched.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrTimeout reports that no response report arrived within the bound.
	ErrTimeout = errors.New("response timed out")

	// ErrBadResponse reports a response that failed the report ID check,
	// did not parse as a decimal value, or fell outside the expected range.
	ErrBadResponse = errors.New("bad response")

	// ErrDeviceIO reports a transport-level write or read failure. After a
	// failed write the device state is unknown; callers should re-query
	// rather than assume the command had no effect.
	ErrDeviceIO = errors.New("device I/O failed")

	// ErrInternal reports a failure inside the library or its backend, such
	// as a command formatting overflow, an enumeration failure, or a device
	// that could not be claimed.
	ErrInternal = errors.New("internal error")

	// ErrNoDevice reports that no connected device matched the open filter.
	ErrNoDevice = errors.New("no matching device")
)
