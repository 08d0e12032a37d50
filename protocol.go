package relacon

import (
	"fmt"
	"strconv"
)

// packCommand places an ASCII command into a fresh report: byte 0 is the
// report ID, the command occupies bytes 1..7 with the remainder zero-padded.
// Commands longer than the payload bound cannot be represented and indicate
// a formatting bug in the caller, not a device problem.
func packCommand(cmd string) (Report, error) {
	var rep Report
	if len(cmd) > reportDataLen {
		return rep, fmt.Errorf("%w: command %q exceeds the %d-byte report payload", ErrInternal, cmd, reportDataLen)
	}
	rep[0] = ReportID
	copy(rep[1:], cmd)
	return rep, nil
}

// parseNumeric decodes a response report as a base-10 integer and validates
// it against an operation-specific inclusive range. The report ID must match,
// the payload must be entirely numeric (a trailing non-digit invalidates the
// whole response), and the value must be in range; any violation wraps
// ErrBadResponse, which is distinct from transport timeouts and I/O errors.
func parseNumeric(rep *Report, min, max int64) (int64, error) {
	if rep[0] != ReportID {
		return 0, fmt.Errorf("%w: unexpected report ID %#02x", ErrBadResponse, rep[0])
	}
	payload := rep.Payload()
	v, err := strconv.ParseInt(string(payload), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: payload %q is not a decimal value", ErrBadResponse, payload)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: value %d outside range [%d, %d]", ErrBadResponse, v, min, max)
	}
	return v, nil
}
