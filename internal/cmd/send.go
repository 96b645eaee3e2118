package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/padcan/padcan/canbus"
	"github.com/padcan/padcan/internal/log"
	"github.com/padcan/padcan/motor"
)

// Send transmits a single frame, for checking the bus and the motor
// controller without a gamepad.
type Send struct {
	Interface string `help:"SocketCAN interface" default:"can1" env:"PADCAN_INTERFACE"`
	ID        uint32 `help:"Standard CAN identifier" default:"44" env:"PADCAN_MOTOR_ID"`
	Left      int16  `help:"Left motor speed (-4095..4095)" default:"0"`
	Right     int16  `help:"Right motor speed (-4095..4095)" default:"0"`
	Data      string `help:"Raw payload as hex (e.g. 01020304); overrides --left/--right"`

	dial busDialer
}

// Run is called by Kong when the send command is executed.
func (s *Send) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.SendFrame(ctx, logger, rawLogger)
}

func (s *Send) SendFrame(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	id, err := canbus.NewStandardID(s.ID)
	if err != nil {
		return err
	}
	payload, err := s.payload()
	if err != nil {
		return err
	}
	frame, err := canbus.NewFrame(id, payload)
	if err != nil {
		return err
	}

	dial := s.dial
	if dial == nil {
		dial = dialSocketCAN
	}
	bus, err := dial(ctx, s.Interface)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	rawLogger.Frame(true, frame.ID, payload)
	if err := bus.TransmitFrame(ctx, frame); err != nil {
		return err
	}
	logger.Info("Frame sent", "interface", s.Interface, "id", id, "data", hex.EncodeToString(payload))
	return nil
}

func (s *Send) payload() ([]byte, error) {
	if s.Data != "" {
		clean := strings.NewReplacer(" ", "", ":", "", "0x", "").Replace(s.Data)
		b, err := hex.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("invalid --data: %w", err)
		}
		return b, nil
	}
	for _, v := range []int16{s.Left, s.Right} {
		if v < -motor.MaxSpeed || v > motor.MaxSpeed {
			return nil, fmt.Errorf("motor speed %d out of range [-%d, %d]", v, motor.MaxSpeed, motor.MaxSpeed)
		}
	}
	return motor.Command{Left: s.Left, Right: s.Right}.BuildPayload(), nil
}
