package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger records report payloads as they cross the transport boundary.
type RawLogger interface {
	Log(out bool, data []byte)
}

// NewRaw returns a RawLogger writing hex dumps to w. A nil writer yields a
// logger that discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// Log writes one line per report: timestamp, direction, hex bytes and a
// printable view of the payload. out=true means host to device.
func (r *rawLogger) Log(out bool, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}

	dir := "D->H"
	if out {
		dir = "H->D"
	}

	var ascii strings.Builder
	for _, b := range data {
		if b >= 0x20 && b < 0x7f {
			ascii.WriteByte(b)
		} else {
			ascii.WriteByte('.')
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%s %s % x |%s|\n",
		time.Now().Format("15:04:05.000"), dir, data, ascii.String())
}
