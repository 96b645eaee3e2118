// Package testing holds fakes shared by package tests.
package testing

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/padcan/padcan/canbus"
	"github.com/padcan/padcan/gamepad"
)

// RecordingTransmitter stores every frame it is asked to send. If Err is set,
// TransmitFrame fails with it instead.
type RecordingTransmitter struct {
	mu     sync.Mutex
	frames []canbus.Frame
	Err    error
}

func (r *RecordingTransmitter) TransmitFrame(_ context.Context, f canbus.Frame) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
	return nil
}

func (r *RecordingTransmitter) Frames() []canbus.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]canbus.Frame(nil), r.frames...)
}

// ScriptedPad replays snapshots, one per Poll. Once the script runs out the
// last snapshot repeats.
type ScriptedPad struct {
	script []gamepad.Snapshot
	polls  int
	// OnPoll, if set, is called with the poll number (starting at 1).
	OnPoll func(n int)
}

func NewScriptedPad(t *testing.T, script ...gamepad.Snapshot) *ScriptedPad {
	t.Helper()
	if len(script) == 0 {
		t.Fatal("ScriptedPad needs at least one snapshot")
	}
	return &ScriptedPad{script: script}
}

func (p *ScriptedPad) Poll() gamepad.Snapshot {
	p.polls++
	if p.OnPoll != nil {
		p.OnPoll(p.polls)
	}
	i := p.polls - 1
	if i >= len(p.script) {
		i = len(p.script) - 1
	}
	return p.script[i]
}

func (p *ScriptedPad) Polls() int { return p.polls }

// Button encodes a joystick button record.
func Button(number uint8, pressed bool) []byte {
	var v int16
	if pressed {
		v = 1
	}
	return record(gamepad.RawEvent{Kind: gamepad.KindButton, Number: number, Value: v})
}

// Axis encodes a joystick axis record.
func Axis(number uint8, value int16) []byte {
	return record(gamepad.RawEvent{Kind: gamepad.KindAxis, Number: number, Value: value})
}

// Init marks a record as a synthetic init event.
func Init(rec []byte) []byte {
	out := append([]byte(nil), rec...)
	out[6] |= byte(gamepad.KindInit)
	return out
}

func record(e gamepad.RawEvent) []byte {
	b, _ := e.MarshalBinary()
	return b
}

// RecordReader returns every record in order, one per Read call, then
// reports io.EOF.
type RecordReader struct {
	records [][]byte
	next    int
}

func NewRecordReader(records ...[]byte) *RecordReader {
	return &RecordReader{records: records}
}

func (r *RecordReader) Read(p []byte) (int, error) {
	if r.next >= len(r.records) {
		return 0, io.EOF
	}
	rec := r.records[r.next]
	r.next++
	return copy(p, rec), nil
}
