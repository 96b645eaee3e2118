package gamepad_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/padcan/padcan/gamepad"
	th "github.com/padcan/padcan/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamepadPoll(t *testing.T) {
	src := th.NewRecordReader(
		th.Init(th.Button(11, true)),
		th.Axis(0, 32767),
		th.Button(11, true),
		[]byte{0x00, 0x01, 0x02},
		th.Axis(3, -32767),
		th.Button(11, false),
	)
	pad := gamepad.New(src, gamepad.DefaultMapping())

	snap := pad.Poll()
	assert.Equal(t, gamepad.Snapshot{}, snap, "init record must not change state")

	snap = pad.Poll()
	assert.Equal(t, 1.0, snap.LeftStick.X)

	snap = pad.Poll()
	assert.Equal(t, gamepad.Pressed, snap.Start)

	short := pad.Poll()
	assert.Equal(t, snap, short, "short read must not change state")

	snap = pad.Poll()
	assert.Equal(t, 1.0, snap.RightStick.Y)
	assert.Equal(t, gamepad.Pressed, snap.Start)

	snap = pad.Poll()
	assert.Equal(t, gamepad.Released, snap.Start)

	// Exhausted stream keeps the last snapshot.
	assert.Equal(t, snap, pad.Poll())
}

func TestGamepadNext(t *testing.T) {
	pad := gamepad.New(bytes.NewReader(th.Button(1, true)), gamepad.DefaultMapping())

	var seen [][]byte
	pad.OnRecord = func(rec []byte) { seen = append(seen, append([]byte(nil), rec...)) }

	ev, d, ok := pad.Next()
	require.True(t, ok)
	assert.Equal(t, "b", ev.Name)
	assert.True(t, ev.Pressed)
	assert.Equal(t, gamepad.FieldB, d.Field)
	assert.Equal(t, [][]byte{th.Button(1, true)}, seen)

	_, _, ok = pad.Next()
	assert.False(t, ok)
}

func TestGamepadWithoutSource(t *testing.T) {
	pad := gamepad.New(nil, gamepad.DefaultMapping())
	for range 3 {
		assert.Equal(t, gamepad.Snapshot{}, pad.Poll())
	}
	assert.NoError(t, pad.Close())
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := gamepad.Open(filepath.Join(t.TempDir(), "js9"), gamepad.DefaultMapping())
	assert.Error(t, err)
}

func TestGamepadErr(t *testing.T) {
	pad := gamepad.New(th.NewRecordReader(th.Button(1, true)), gamepad.DefaultMapping())

	_, _, ok := pad.Next()
	require.True(t, ok)
	assert.NoError(t, pad.Err())

	_, _, ok = pad.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, pad.Err(), io.EOF)

	// The snapshot survives the failed read.
	assert.Equal(t, gamepad.Pressed, pad.Poll().B)
	assert.ErrorIs(t, pad.Err(), io.EOF)
}
