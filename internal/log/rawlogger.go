package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger dumps wire traffic: CAN frames and joystick records.
type RawLogger interface {
	// Frame logs a CAN frame. tx=true means sent by us.
	Frame(tx bool, id uint32, data []byte)
	// Record logs one joystick record as read from the device.
	Record(data []byte)
}

type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw creates a new RawLogger. If w is nil, the logger discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

func (r *rawLogger) Frame(tx bool, id uint32, data []byte) {
	dir := "RX"
	if tx {
		dir = "TX"
	}
	r.write(fmt.Sprintf("%s %03X [%d]", dir, id, len(data)), data)
}

func (r *rawLogger) Record(data []byte) {
	if len(data) == 0 {
		return
	}
	r.write(fmt.Sprintf("JS [%d]", len(data)), data)
}

func (r *rawLogger) write(prefix string, data []byte) {
	if r.w == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(r.now().Format("2006/01/02 15:04:05.000"))
	sb.WriteByte(' ')
	sb.WriteString(prefix)
	const hexdigits = "0123456789ABCDEF"
	for _, b := range data {
		sb.WriteByte(' ')
		sb.WriteByte(hexdigits[b>>4])
		sb.WriteByte(hexdigits[b&0x0f])
	}
	sb.WriteByte('\n')

	r.mu.Lock()
	_, _ = io.WriteString(r.w, sb.String())
	r.mu.Unlock()
}
