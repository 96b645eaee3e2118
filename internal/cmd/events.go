package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/padcan/padcan/gamepad"
	"github.com/padcan/padcan/internal/log"
	"golang.org/x/term"
)

// Events prints what the decoder makes of the joystick, for writing a
// mapping file for new hardware.
type Events struct {
	Device  string `help:"Joystick device node" default:"/dev/input/js0" env:"PADCAN_DEVICE"`
	Mapping string `help:"Axis/button mapping file; empty uses the built-in layout" env:"PADCAN_MAPPING"`
}

// Run is called by Kong when the events command is executed.
func (e *Events) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mapping, err := loadMapping(e.Mapping)
	if err != nil {
		return err
	}
	pad, err := gamepad.Open(e.Device, mapping)
	if err != nil {
		return err
	}
	pad.OnRecord = rawLogger.Record
	go func() {
		<-ctx.Done()
		_ = pad.Close()
	}()

	logger.Info("Reading joystick", "device", e.Device, "name", pad.Name(),
		"axes", len(mapping.Axes), "buttons", len(mapping.Buttons))
	live := term.IsTerminal(int(os.Stdout.Fd()))
	err = printEvents(ctx, pad, os.Stdout, live)
	if live {
		fmt.Fprintln(os.Stdout)
	}
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// printEvents writes one line per decoded event until ctx is done or the
// device stops returning records. With live set it redraws a single status
// line holding the last event and snapshot.
func printEvents(ctx context.Context, pad *gamepad.Gamepad, w io.Writer, live bool) error {
	for ctx.Err() == nil {
		ev, d, ok := pad.Next()
		if !ok {
			if err := pad.Err(); err != nil {
				return fmt.Errorf("joystick read failed: %w", err)
			}
			continue
		}
		if live {
			fmt.Fprintf(w, "\r\033[2K%s | %s", ev, pad.State().Snapshot())
			continue
		}
		fmt.Fprintf(w, "%s field=%s\n", ev, d.Field)
	}
	return nil
}
