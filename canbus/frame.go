// Package canbus builds standard-identifier CAN frames and moves them over
// SocketCAN.
package canbus

import (
	"errors"
	"fmt"

	"go.einride.tech/can"
)

// MaxStandardID is the largest 11-bit identifier.
const MaxStandardID = 0x7ff

var (
	ErrInvalidID      = errors.New("invalid standard CAN identifier")
	ErrPayloadTooLong = errors.New("CAN payload longer than 8 bytes")
)

// Frame is a classic CAN data frame.
type Frame = can.Frame

// ID is an 11-bit standard CAN identifier.
type ID uint16

const (
	// MotorID carries motor.Command payloads.
	MotorID ID = 0x2C
	// ServoID is reserved for the steering servo channel.
	ServoID ID = 0x2D
)

// NewStandardID validates v as an 11-bit identifier.
func NewStandardID(v uint32) (ID, error) {
	if v > MaxStandardID {
		return 0, fmt.Errorf("%w: 0x%x", ErrInvalidID, v)
	}
	return ID(v), nil
}

// MustStandardID is like NewStandardID but panics on an invalid value.
func MustStandardID(v uint32) ID {
	id, err := NewStandardID(v)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	return fmt.Sprintf("0x%03X", uint16(id))
}

// NewFrame builds a data frame carrying payload on id.
func NewFrame(id ID, payload []byte) (Frame, error) {
	if uint32(id) > MaxStandardID {
		return Frame{}, fmt.Errorf("%w: 0x%x", ErrInvalidID, uint16(id))
	}
	if len(payload) > len(can.Data{}) {
		return Frame{}, fmt.Errorf("%w: %d", ErrPayloadTooLong, len(payload))
	}
	f := Frame{
		ID:     uint32(id),
		Length: uint8(len(payload)),
	}
	copy(f.Data[:], payload)
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// Payload returns the frame's data bytes.
func Payload(f Frame) []byte {
	return f.Data[:f.Length]
}
