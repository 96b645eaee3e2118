package canbus

import (
	"context"
	"fmt"
	"net"

	"go.einride.tech/can/pkg/socketcan"
)

// Transmitter sends a single frame.
type Transmitter interface {
	TransmitFrame(ctx context.Context, f Frame) error
}

// Bus is a raw SocketCAN connection on one interface.
type Bus struct {
	iface string
	conn  net.Conn
	tx    *socketcan.Transmitter
}

// Dial opens a raw CAN socket on iface (e.g. "can0").
func Dial(ctx context.Context, iface string) (*Bus, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("failed to open CAN interface %s: %w", iface, err)
	}
	return NewBus(iface, conn), nil
}

// NewBus wraps a connection that carries SocketCAN frames, such as the
// one returned by socketcan.DialContext.
func NewBus(iface string, conn net.Conn) *Bus {
	return &Bus{
		iface: iface,
		conn:  conn,
		tx:    socketcan.NewTransmitter(conn),
	}
}

func (b *Bus) Interface() string { return b.iface }

// TransmitFrame writes f to the bus.
func (b *Bus) TransmitFrame(ctx context.Context, f Frame) error {
	if err := b.tx.TransmitFrame(ctx, f); err != nil {
		return fmt.Errorf("failed to transmit frame on %s: %w", b.iface, err)
	}
	return nil
}

// Receive calls fn for every frame read from the bus until the connection is
// closed or fn returns an error.
func (b *Bus) Receive(fn func(Frame) error) error {
	recv := socketcan.NewReceiver(b.conn)
	for recv.Receive() {
		if recv.HasErrorFrame() {
			continue
		}
		if err := fn(recv.Frame()); err != nil {
			return err
		}
	}
	return recv.Err()
}

func (b *Bus) Close() error {
	return b.conn.Close()
}
