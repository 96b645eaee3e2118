package gamepad

import "fmt"

// Vector3 is one stick. Z is driven by the stick's click button.
type Vector3 struct {
	X, Y, Z float64
}

// ButtonReading separates "never observed" from "observed released".
type ButtonReading uint8

const (
	Unset ButtonReading = iota
	Pressed
	Released
)

func readingOf(pressed bool) ButtonReading {
	if pressed {
		return Pressed
	}
	return Released
}

func (r ButtonReading) IsPressed() bool { return r == Pressed }

func (r ButtonReading) String() string {
	switch r {
	case Unset:
		return "unset"
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("ButtonReading(%d)", uint8(r))
	}
}

// Snapshot is the semantic view of the pad consumed by the control loop.
// Y components point forward when the stick is pushed up.
type Snapshot struct {
	LeftStick  Vector3
	RightStick Vector3

	A, B, X, Y     ButtonReading
	L1, R1, L2, R2 ButtonReading
	Select, Start  ButtonReading
	Home           ButtonReading
}

func (s Snapshot) String() string {
	return fmt.Sprintf("L(%+.3f,%+.3f,%.0f) R(%+.3f,%+.3f,%.0f) a=%s b=%s x=%s y=%s l1=%s r1=%s l2=%s r2=%s select=%s start=%s home=%s",
		s.LeftStick.X, s.LeftStick.Y, s.LeftStick.Z,
		s.RightStick.X, s.RightStick.Y, s.RightStick.Z,
		s.A, s.B, s.X, s.Y, s.L1, s.R1, s.L2, s.R2, s.Select, s.Start, s.Home)
}

// Field names the snapshot field an event wrote to.
type Field uint8

const (
	FieldNone Field = iota
	FieldLeftX
	FieldLeftY
	FieldLeftZ
	FieldRightX
	FieldRightY
	FieldRightZ
	FieldA
	FieldB
	FieldX
	FieldY
	FieldL1
	FieldR1
	FieldL2
	FieldR2
	FieldSelect
	FieldStart
	FieldHome
)

var fieldNames = [...]string{
	FieldNone:   "none",
	FieldLeftX:  "leftStick.x",
	FieldLeftY:  "leftStick.y",
	FieldLeftZ:  "leftStick.z",
	FieldRightX: "rightStick.x",
	FieldRightY: "rightStick.y",
	FieldRightZ: "rightStick.z",
	FieldA:      "a",
	FieldB:      "b",
	FieldX:      "x",
	FieldY:      "y",
	FieldL1:     "l1",
	FieldR1:     "r1",
	FieldL2:     "l2",
	FieldR2:     "r2",
	FieldSelect: "select",
	FieldStart:  "start",
	FieldHome:   "home",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", uint8(f))
}

// Mapping names bound to snapshot fields.
var (
	axisFields = map[string]Field{
		"lx": FieldLeftX,
		"ly": FieldLeftY,
		"rx": FieldRightX,
		"ry": FieldRightY,
	}
	buttonFields = map[string]Field{
		"a":      FieldA,
		"b":      FieldB,
		"x":      FieldX,
		"y":      FieldY,
		"l1":     FieldL1,
		"r1":     FieldR1,
		"l2":     FieldL2,
		"r2":     FieldR2,
		"select": FieldSelect,
		"start":  FieldStart,
		"home":   FieldHome,
		"lz":     FieldLeftZ,
		"rz":     FieldRightZ,
	}
)

func (s *Snapshot) setAxis(f Field, v float64) {
	switch f {
	case FieldLeftX:
		s.LeftStick.X = v
	case FieldLeftY:
		s.LeftStick.Y = -v
	case FieldRightX:
		s.RightStick.X = v
	case FieldRightY:
		s.RightStick.Y = -v
	}
}

func (s *Snapshot) setButton(f Field, pressed bool) {
	if f == FieldLeftZ || f == FieldRightZ {
		z := 0.0
		if pressed {
			z = 1.0
		}
		if f == FieldLeftZ {
			s.LeftStick.Z = z
		} else {
			s.RightStick.Z = z
		}
		return
	}
	if r := s.reading(f); r != nil {
		*r = readingOf(pressed)
	}
}

func (s *Snapshot) reading(f Field) *ButtonReading {
	switch f {
	case FieldA:
		return &s.A
	case FieldB:
		return &s.B
	case FieldX:
		return &s.X
	case FieldY:
		return &s.Y
	case FieldL1:
		return &s.L1
	case FieldR1:
		return &s.R1
	case FieldL2:
		return &s.L2
	case FieldR2:
		return &s.R2
	case FieldSelect:
		return &s.Select
	case FieldStart:
		return &s.Start
	case FieldHome:
		return &s.Home
	}
	return nil
}
