package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/padcan/padcan/canbus"
	"github.com/padcan/padcan/control"
	"github.com/padcan/padcan/gamepad"
	"github.com/padcan/padcan/internal/log"
)

// Drive is the manual teleoperation command.
type Drive struct {
	Device    string        `help:"Joystick device node" default:"/dev/input/js0" env:"PADCAN_DEVICE"`
	Interface string        `help:"SocketCAN interface for motor frames" default:"can1" env:"PADCAN_INTERFACE"`
	Mapping   string        `help:"Axis/button mapping file (JSON, YAML or TOML); empty uses the built-in layout" env:"PADCAN_MAPPING"`
	MotorID   uint32        `help:"Standard CAN identifier for motor commands" default:"44" env:"PADCAN_MOTOR_ID"`
	Interval  time.Duration `help:"Minimum time between motor frames; 0 sends on every poll" default:"0s" env:"PADCAN_INTERVAL"`

	dial busDialer
}

type frameBus interface {
	canbus.Transmitter
	Close() error
}

type busDialer func(ctx context.Context, iface string) (frameBus, error)

func dialSocketCAN(ctx context.Context, iface string) (frameBus, error) {
	b, err := canbus.Dial(ctx, iface)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Run is called by Kong when the drive command is executed.
func (d *Drive) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return d.StartDrive(ctx, logger, rawLogger)
}

// StartDrive runs the drive loop until Select is pressed in Idle or ctx is
// done. Failing to open or write the CAN interface is returned; a missing
// joystick is only logged and the loop runs without input.
func (d *Drive) StartDrive(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	id, err := canbus.NewStandardID(d.MotorID)
	if err != nil {
		return fmt.Errorf("invalid motor id: %w", err)
	}
	mapping, err := loadMapping(d.Mapping)
	if err != nil {
		return err
	}

	dial := d.dial
	if dial == nil {
		dial = dialSocketCAN
	}
	bus, err := dial(ctx, d.Interface)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()
	logger.Info("CAN interface open", "interface", d.Interface, "motorId", id)

	pad, err := gamepad.Open(d.Device, mapping)
	if err != nil {
		logger.Warn("Joystick unavailable, running without input", "device", d.Device, "error", err)
		pad = gamepad.New(nil, mapping)
	} else {
		logger.Info("Joystick open", "device", d.Device, "name", pad.Name())
	}
	pad.OnRecord = rawLogger.Record

	// Closing the device unblocks a pending read so the loop sees ctx.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = pad.Close()
	}()

	loop := control.New(pad, bus, control.Config{MotorID: id, Interval: d.Interval}, logger, rawLogger)
	logger.Info("Ready: Start drives, B stops driving, Select quits")
	err = loop.Run(ctx)
	if err != nil && ctx.Err() != nil {
		logger.Info("Drive interrupted", "frames", loop.Frames())
		return nil
	}
	return err
}

func loadMapping(path string) (gamepad.Mapping, error) {
	if path == "" {
		return gamepad.DefaultMapping(), nil
	}
	m, err := gamepad.LoadMapping(path)
	if err != nil {
		return gamepad.Mapping{}, fmt.Errorf("failed to load mapping: %w", err)
	}
	return m, nil
}
