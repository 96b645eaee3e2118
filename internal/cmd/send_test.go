package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/padcan/padcan/canbus"
	"github.com/padcan/padcan/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPayload(t *testing.T) {
	tests := []struct {
		name    string
		send    Send
		want    []byte
		wantErr bool
	}{
		{name: "zero speeds", send: Send{}, want: []byte{0, 0, 0, 0}},
		{name: "speeds", send: Send{Left: -2047, Right: 2047}, want: []byte{0x01, 0xf8, 0xff, 0x07}},
		{name: "full forward", send: Send{Left: 4095, Right: 4095}, want: []byte{0xff, 0x0f, 0xff, 0x0f}},
		{name: "left too fast", send: Send{Left: 4096}, wantErr: true},
		{name: "right too slow", send: Send{Right: -4096}, wantErr: true},
		{name: "hex", send: Send{Data: "01020304"}, want: []byte{1, 2, 3, 4}},
		{name: "hex with separators", send: Send{Data: "0xde:ad be:ef"}, want: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "hex overrides speeds", send: Send{Data: "ff", Left: 9999}, want: []byte{0xff}},
		{name: "bad hex", send: Send{Data: "zz"}, wantErr: true},
		{name: "odd hex", send: Send{Data: "abc"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.send.payload()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSendFrame(t *testing.T) {
	bus := &fakeBus{}
	var raw bytes.Buffer
	s := &Send{Interface: "vcan0", ID: 0x2D, Left: 100, Right: -100, dial: fakeDialer(bus, nil)}

	require.NoError(t, s.SendFrame(t.Context(), slog.New(slog.DiscardHandler), log.NewRaw(&raw)))

	frames := bus.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, uint32(0x2D), frames[0].ID)
	assert.Equal(t, []byte{0x64, 0x00, 0x9c, 0xff}, canbus.Payload(frames[0]))
	assert.True(t, bus.closed)
	assert.Contains(t, raw.String(), "TX 02D [4] 64 00 9C FF")
}

func TestSendFrameErrors(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		s := &Send{ID: 0x800, dial: fakeDialer(&fakeBus{}, nil)}
		err := s.SendFrame(t.Context(), slog.New(slog.DiscardHandler), log.NewRaw(nil))
		assert.ErrorIs(t, err, canbus.ErrInvalidID)
	})
	t.Run("payload too long", func(t *testing.T) {
		s := &Send{ID: 44, Data: "010203040506070809", dial: fakeDialer(&fakeBus{}, nil)}
		err := s.SendFrame(t.Context(), slog.New(slog.DiscardHandler), log.NewRaw(nil))
		assert.ErrorIs(t, err, canbus.ErrPayloadTooLong)
	})
	t.Run("transmit", func(t *testing.T) {
		sentinel := errors.New("bus off")
		bus := &fakeBus{}
		bus.Err = sentinel
		s := &Send{ID: 44, dial: fakeDialer(bus, nil)}
		err := s.SendFrame(t.Context(), slog.New(slog.DiscardHandler), log.NewRaw(nil))
		assert.ErrorIs(t, err, sentinel)
		assert.True(t, bus.closed)
	})
}
