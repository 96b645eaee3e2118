package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/padcan/padcan/gamepad"
	th "github.com/padcan/padcan/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintEvents(t *testing.T) {
	src := th.NewRecordReader(
		th.Init(th.Button(0, false)),
		th.Button(11, true),
		th.Axis(3, -32767),
		th.Button(2, true),
	)
	pad := gamepad.New(src, gamepad.DefaultMapping())

	var out bytes.Buffer
	err := printEvents(t.Context(), pad, &out, false)
	require.ErrorIs(t, err, io.EOF)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"button start(11) pressed=true field=start",
		"axis ry(3) value=-1.0000 field=rightStick.y",
		"button unknown2(2) pressed=true field=none",
	}, lines)
}

func TestPrintEventsLive(t *testing.T) {
	pad := gamepad.New(th.NewRecordReader(th.Button(1, true)), gamepad.DefaultMapping())

	var out bytes.Buffer
	require.ErrorIs(t, printEvents(t.Context(), pad, &out, true), io.EOF)

	assert.True(t, strings.HasPrefix(out.String(), "\r\033[2Kbutton b(1) pressed=true | "))
	assert.Contains(t, out.String(), "b=pressed")
	assert.NotContains(t, out.String(), "\n")
}

func TestPrintEventsStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	pad := gamepad.New(th.NewRecordReader(th.Button(1, true)), gamepad.DefaultMapping())

	var out bytes.Buffer
	assert.NoError(t, printEvents(ctx, pad, &out, false))
	assert.Empty(t, out.String())
}

func TestPrintEventsUnpluggedDevice(t *testing.T) {
	dev, err := os.Open(writeRecords(t, th.Button(1, true)))
	require.NoError(t, err)
	pad := gamepad.New(dev, gamepad.DefaultMapping())
	require.NoError(t, pad.Close())

	var out bytes.Buffer
	err = printEvents(t.Context(), pad, &out, false)
	assert.ErrorIs(t, err, os.ErrClosed)
}
