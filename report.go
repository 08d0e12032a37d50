package relacon

import (
	"bytes"
	"time"
)

const (
	// ReportLen is the fixed size of every report exchanged with the device,
	// including the leading report ID byte.
	ReportLen = 8

	// ReportID identifies the command/response report collection shared by
	// all supported devices. Byte 0 of every report carries this value.
	ReportID = 0x01

	// reportDataLen is the usable ASCII payload size of a report.
	reportDataLen = ReportLen - 1
)

// DefaultTimeout bounds the wait for a response report when an operation
// does not take an explicit timeout.
const DefaultTimeout = 500 * time.Millisecond

// Report is one fixed-size unit exchanged with the device. Byte 0 carries
// the report ID; bytes 1..7 carry a NUL-padded ASCII command or response of
// at most seven characters.
type Report [ReportLen]byte

// Payload returns the ASCII payload bytes up to the first NUL.
func (r *Report) Payload() []byte {
	data := r[1:]
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return data
}
