package gamepad

import (
	"fmt"
	"io"
	"os"
)

// Gamepad reads joystick records from a device and keeps the resulting State.
// A Gamepad without a source polls nothing and keeps its initial snapshot.
type Gamepad struct {
	src   io.Reader
	name  string
	state *State
	buf   [EventSize]byte
	err   error

	// OnRecord, if set, receives every complete record read from the device,
	// including the ones that are dropped.
	OnRecord func(record []byte)
}

// New returns a Gamepad reading records from src. src may be nil.
func New(src io.Reader, m Mapping) *Gamepad {
	return &Gamepad{
		src:   src,
		state: NewState(m),
	}
}

// Open opens a joystick device node such as /dev/input/js0.
func Open(path string, m Mapping) (*Gamepad, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open joystick %s: %w", path, err)
	}
	g := New(f, m)
	// Best effort, the name is only used for logging.
	g.name, _ = deviceName(f)
	return g, nil
}

// Name is the name the driver reports for the device, if known.
func (g *Gamepad) Name() string { return g.name }

func (g *Gamepad) State() *State { return g.state }

// Next performs one read and applies the record. It reports false when the
// read was short or failed, or the record was dropped.
func (g *Gamepad) Next() (Event, Delta, bool) {
	if g.src == nil {
		return Event{}, Delta{}, false
	}
	// Short and failed reads are an empty poll; Err keeps the failure.
	n, err := g.src.Read(g.buf[:])
	g.err = err
	if n < EventSize {
		return Event{}, Delta{}, false
	}
	if g.OnRecord != nil {
		g.OnRecord(g.buf[:])
	}
	raw, ok := Decode(g.buf[:n])
	if !ok {
		return Event{}, Delta{}, false
	}
	return g.state.ApplyRaw(raw)
}

// Err returns the error of the most recent read, if it failed. Once the
// device is gone (io.EOF, os.ErrClosed, ENODEV) every later read fails the
// same way.
func (g *Gamepad) Err() error { return g.err }

// Poll reads at most one record and returns the current snapshot.
func (g *Gamepad) Poll() Snapshot {
	g.Next()
	return g.state.Snapshot()
}

// Close closes the underlying device if it is closable.
func (g *Gamepad) Close() error {
	if c, ok := g.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
