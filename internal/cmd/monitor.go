package cmd

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/padcan/padcan/canbus"
	"github.com/padcan/padcan/internal/log"
	"github.com/padcan/padcan/motor"
)

// Monitor logs the frames the motor controller would receive.
type Monitor struct {
	Interface string `help:"SocketCAN interface" default:"can1" env:"PADCAN_INTERFACE"`
	MotorID   uint32 `help:"Identifier decoded as motor commands" default:"44" env:"PADCAN_MOTOR_ID"`
	All       bool   `help:"Also log frames on other identifiers"`

	dial sourceDialer
}

type frameSource interface {
	Receive(fn func(canbus.Frame) error) error
	Close() error
}

type sourceDialer func(ctx context.Context, iface string) (frameSource, error)

func dialReceiver(ctx context.Context, iface string) (frameSource, error) {
	b, err := canbus.Dial(ctx, iface)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Run is called by Kong when the monitor command is executed.
func (m *Monitor) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return m.Listen(ctx, logger, rawLogger)
}

// Listen logs received frames until ctx is done or the connection ends.
func (m *Monitor) Listen(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	motorID, err := canbus.NewStandardID(m.MotorID)
	if err != nil {
		return err
	}
	dial := m.dial
	if dial == nil {
		dial = dialReceiver
	}
	bus, err := dial(ctx, m.Interface)
	if err != nil {
		return err
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = bus.Close()
	}()

	logger.Info("Listening", "interface", m.Interface, "motorId", motorID)
	err = bus.Receive(func(f canbus.Frame) error {
		rawLogger.Frame(false, f.ID, canbus.Payload(f))
		m.logFrame(logger, motorID, f)
		return nil
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Monitor) logFrame(logger *slog.Logger, motorID canbus.ID, f canbus.Frame) {
	data := canbus.Payload(f)
	switch {
	case f.IsExtended:
		if m.All {
			logger.Info("Frame", "id", f.ID, "extended", true, "data", hex.EncodeToString(data))
		}
	case canbus.ID(f.ID) == motorID:
		var cmd motor.Command
		if err := cmd.UnmarshalBinary(data); err != nil {
			logger.Warn("Short motor frame", "id", motorID, "data", hex.EncodeToString(data))
			return
		}
		logger.Info("Motor command", "left", cmd.Left, "right", cmd.Right)
	case canbus.ID(f.ID) == canbus.ServoID:
		logger.Info("Servo frame", "data", hex.EncodeToString(data))
	default:
		if m.All {
			logger.Info("Frame", "id", canbus.ID(f.ID), "data", hex.EncodeToString(data))
		}
	}
}
