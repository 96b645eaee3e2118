// Package gamepad decodes the Linux joystick event stream and folds it into a
// semantic gamepad snapshot.
package gamepad

import (
	"encoding/binary"
	"fmt"
	"io"
)

// EventSize is the size of one joystick record on the wire.
const EventSize = 8

// Kind is the bitmask carried in the type byte of a joystick record.
type Kind uint8

const (
	KindButton Kind = 0x01
	KindAxis   Kind = 0x02
	// KindInit marks synthetic events the kernel emits on open to report
	// initial state. They are never treated as live input.
	KindInit Kind = 0x80
)

// RawEvent is one joystick record as read from the device.
// Layout (little-endian):
//
//	0-3: Timestamp (ms, uint32)
//	4-5: Value (int16)
//	  6: Kind
//	  7: Number (axis or button index)
type RawEvent struct {
	Timestamp uint32
	Value     int16
	Kind      Kind
	Number    uint8
}

func (e RawEvent) IsInit() bool   { return e.Kind&KindInit != 0 }
func (e RawEvent) IsButton() bool { return e.Kind&KindButton != 0 }
func (e RawEvent) IsAxis() bool   { return e.Kind&KindAxis != 0 }

func (e RawEvent) String() string {
	return fmt.Sprintf("t=%d kind=0x%02x number=%d value=%d", e.Timestamp, uint8(e.Kind), e.Number, e.Value)
}

// MarshalBinary encodes the RawEvent into its 8 byte record.
func (e *RawEvent) MarshalBinary() ([]byte, error) {
	b := make([]byte, EventSize)
	binary.LittleEndian.PutUint32(b[0:4], e.Timestamp)
	binary.LittleEndian.PutUint16(b[4:6], uint16(e.Value))
	b[6] = uint8(e.Kind)
	b[7] = e.Number
	return b, nil
}

// UnmarshalBinary decodes an 8 byte record. Extra bytes are ignored.
func (e *RawEvent) UnmarshalBinary(data []byte) error {
	if len(data) < EventSize {
		return io.ErrUnexpectedEOF
	}
	e.Timestamp = binary.LittleEndian.Uint32(data[0:4])
	e.Value = int16(binary.LittleEndian.Uint16(data[4:6]))
	e.Kind = Kind(data[6])
	e.Number = data[7]
	return nil
}

// Decode parses a record read from the device. A short read yields no event.
func Decode(data []byte) (RawEvent, bool) {
	var e RawEvent
	if err := e.UnmarshalBinary(data); err != nil {
		return RawEvent{}, false
	}
	return e, true
}

// EventType distinguishes resolved events.
type EventType uint8

const (
	ButtonEvent EventType = iota + 1
	AxisEvent
)

func (t EventType) String() string {
	switch t {
	case ButtonEvent:
		return "button"
	case AxisEvent:
		return "axis"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Event is a RawEvent resolved against a Mapping.
type Event struct {
	Type      EventType
	Index     int
	Name      string
	Timestamp uint32
	// Pressed is set for button events.
	Pressed bool
	// Value is the normalized axis position, raw/32767.
	Value float64
}

func (e Event) String() string {
	if e.Type == ButtonEvent {
		return fmt.Sprintf("button %s(%d) pressed=%t", e.Name, e.Index, e.Pressed)
	}
	return fmt.Sprintf("axis %s(%d) value=%.4f", e.Name, e.Index, e.Value)
}

// Resolve maps a RawEvent onto a named axis or button. Init events, indices
// outside the mapping and records with neither kind bit are dropped.
func Resolve(raw RawEvent, m Mapping) (Event, bool) {
	if raw.IsInit() {
		return Event{}, false
	}
	idx := int(raw.Number)
	switch {
	case raw.IsButton():
		if idx >= len(m.Buttons) {
			return Event{}, false
		}
		return Event{
			Type:      ButtonEvent,
			Index:     idx,
			Name:      m.Buttons[idx],
			Timestamp: raw.Timestamp,
			Pressed:   raw.Value != 0,
		}, true
	case raw.IsAxis():
		if idx >= len(m.Axes) {
			return Event{}, false
		}
		return Event{
			Type:      AxisEvent,
			Index:     idx,
			Name:      m.Axes[idx],
			Timestamp: raw.Timestamp,
			Value:     normalizeAxis(raw.Value),
		}, true
	}
	return Event{}, false
}

func normalizeAxis(v int16) float64 {
	return float64(v) / 32767.0
}
