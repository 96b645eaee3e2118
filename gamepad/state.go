package gamepad

// Delta reports which snapshot field an applied event wrote.
type Delta struct {
	Field Field
}

// Changed reports whether the snapshot was touched.
func (d Delta) Changed() bool { return d.Field != FieldNone }

// State holds the latest value of every mapped axis and button and the
// snapshot folded from them. It is not safe for concurrent use.
type State struct {
	mapping Mapping

	AxisStates   map[string]float64
	ButtonStates map[string]bool

	snapshot Snapshot
}

// NewState returns a State with every mapped axis at 0 and every button released.
func NewState(m Mapping) *State {
	s := &State{
		mapping:      m,
		AxisStates:   make(map[string]float64, len(m.Axes)),
		ButtonStates: make(map[string]bool, len(m.Buttons)),
	}
	for _, a := range m.Axes {
		s.AxisStates[a] = 0
	}
	for _, b := range m.Buttons {
		s.ButtonStates[b] = false
	}
	return s
}

func (s *State) Mapping() Mapping { return s.mapping }

// Apply records a resolved event. Only the field bound to the event's name
// changes in the snapshot; unbound names update the raw tables only.
func (s *State) Apply(ev Event) Delta {
	switch ev.Type {
	case ButtonEvent:
		s.ButtonStates[ev.Name] = ev.Pressed
		f, ok := buttonFields[ev.Name]
		if !ok {
			return Delta{}
		}
		s.snapshot.setButton(f, ev.Pressed)
		return Delta{Field: f}
	case AxisEvent:
		s.AxisStates[ev.Name] = ev.Value
		f, ok := axisFields[ev.Name]
		if !ok {
			return Delta{}
		}
		s.snapshot.setAxis(f, ev.Value)
		return Delta{Field: f}
	}
	return Delta{}
}

// ApplyRaw resolves a RawEvent against the state's mapping and applies it.
// Dropped records report false.
func (s *State) ApplyRaw(raw RawEvent) (Event, Delta, bool) {
	ev, ok := Resolve(raw, s.mapping)
	if !ok {
		return Event{}, Delta{}, false
	}
	return ev, s.Apply(ev), true
}

func (s *State) Snapshot() Snapshot { return s.snapshot }
