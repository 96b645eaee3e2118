// Package control runs the Idle/Manual drive state machine.
//
// Idle polls the pad once per iteration: Select ends the run, Start enters
// Manual. Manual polls, leaves on B, and otherwise mixes left stick x
// (steering) and right stick y (throttle) into one motor frame per poll.
// Both checks look at the latest poll only; a held Start re-enters Manual on
// every Idle poll.
package control

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/padcan/padcan/canbus"
	"github.com/padcan/padcan/gamepad"
	"github.com/padcan/padcan/internal/log"
	"github.com/padcan/padcan/motor"
)

// Mode is the state of the drive loop.
type Mode uint8

const (
	Idle Mode = iota
	Manual
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Manual:
		return "manual"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Poller returns the pad state after reading at most one event.
type Poller interface {
	Poll() gamepad.Snapshot
}

// Config tunes the loop.
type Config struct {
	// MotorID is the identifier motor frames are sent on. Zero is a valid
	// identifier, not a default.
	MotorID canbus.ID
	// Interval paces frames in Manual. Zero sends as fast as the pad is polled.
	Interval time.Duration
}

// DefaultConfig sends on canbus.MotorID without pacing.
func DefaultConfig() Config {
	return Config{MotorID: canbus.MotorID}
}

// Loop drives the motors from the pad. It is not safe for concurrent use.
type Loop struct {
	pad       Poller
	tx        canbus.Transmitter
	cfg       Config
	logger    *slog.Logger
	rawLogger log.RawLogger

	mode   Mode
	frames uint64
}

func New(pad Poller, tx canbus.Transmitter, cfg Config, logger *slog.Logger, rawLogger log.RawLogger) *Loop {
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	return &Loop{
		pad:       pad,
		tx:        tx,
		cfg:       cfg,
		logger:    logger,
		rawLogger: rawLogger,
	}
}

func (l *Loop) Mode() Mode { return l.mode }

// Frames is the number of motor frames sent so far.
func (l *Loop) Frames() uint64 { return l.frames }

// Run polls until Select is seen in Idle, a frame fails to send, or ctx is
// done. Select returns nil; a failed send is returned and must end the
// program, since the motors keep their last command.
func (l *Loop) Run(ctx context.Context) error {
	l.setMode(Idle)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap := l.pad.Poll()
		if snap.Select.IsPressed() {
			l.logger.Info("Select pressed, stopping", "frames", l.frames)
			return nil
		}
		if snap.Start.IsPressed() {
			if err := l.manual(ctx); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) manual(ctx context.Context) error {
	l.setMode(Manual)
	defer l.setMode(Idle)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap := l.pad.Poll()
		if snap.B.IsPressed() {
			return nil
		}
		if err := l.send(ctx, motor.Mix(snap.LeftStick.X, snap.RightStick.Y)); err != nil {
			return err
		}
		if l.cfg.Interval > 0 {
			if err := sleep(ctx, l.cfg.Interval); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) send(ctx context.Context, cmd motor.Command) error {
	frame, err := canbus.NewFrame(l.cfg.MotorID, cmd.BuildPayload())
	if err != nil {
		return fmt.Errorf("failed to build motor frame: %w", err)
	}
	l.rawLogger.Frame(true, frame.ID, canbus.Payload(frame))
	if err := l.tx.TransmitFrame(ctx, frame); err != nil {
		return fmt.Errorf("failed to send motor command %s: %w", cmd, err)
	}
	l.frames++
	l.logger.Log(ctx, log.LevelTrace, "Motor command sent", "left", cmd.Left, "right", cmd.Right)
	return nil
}

func (l *Loop) setMode(m Mode) {
	if l.mode == m {
		return
	}
	l.logger.Info("Drive mode changed", "from", l.mode, "to", m)
	l.mode = m
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
