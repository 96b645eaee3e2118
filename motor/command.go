// Package motor mixes stick input into differential-drive motor speeds and
// encodes them for the motor controller.
package motor

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// MaxSpeed is the motor controller's full-scale speed in either direction.
const MaxSpeed = 4095

// PayloadSize is the size of an encoded Command.
const PayloadSize = 4

// Command is one speed setpoint per side, each within [-MaxSpeed, MaxSpeed].
type Command struct {
	Left  int16
	Right int16
}

func (c Command) String() string {
	return fmt.Sprintf("left=%d right=%d", c.Left, c.Right)
}

// Mix turns steering (left stick x) and throttle (right stick y, forward
// positive), both in [-1, 1], into a Command. Steering has half the authority
// of throttle. Results are clamped, then truncated toward zero.
func Mix(steering, throttle float64) Command {
	t := throttle * MaxSpeed
	s := steering * MaxSpeed / 2
	return Command{
		Left:  toSpeed(t - s),
		Right: toSpeed(t + s),
	}
}

func toSpeed(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(-MaxSpeed, math.Min(MaxSpeed, v))
	return int16(v)
}

// BuildPayload encodes the Command into the 4-byte CAN payload.
// Layout:
//
//	0-1: Left (little-endian int16)
//	2-3: Right (little-endian int16)
func (c Command) BuildPayload() []byte {
	b := make([]byte, PayloadSize)
	binary.LittleEndian.PutUint16(b[0:2], uint16(c.Left))
	binary.LittleEndian.PutUint16(b[2:4], uint16(c.Right))
	return b
}

// MarshalBinary encodes Command to 4 bytes.
func (c *Command) MarshalBinary() ([]byte, error) {
	return c.BuildPayload(), nil
}

// UnmarshalBinary decodes 4 bytes into Command.
func (c *Command) UnmarshalBinary(data []byte) error {
	if len(data) < PayloadSize {
		return io.ErrUnexpectedEOF
	}
	c.Left = int16(binary.LittleEndian.Uint16(data[0:2]))
	c.Right = int16(binary.LittleEndian.Uint16(data[2:4]))
	return nil
}
