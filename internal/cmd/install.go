package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Install registers padcan drive as a system service so the vehicle is
// drivable after boot.
type Install struct {
	Device    string `help:"Joystick device node the service reads" default:"/dev/input/js0" env:"PADCAN_DEVICE"`
	Interface string `help:"SocketCAN interface the service drives; the service starts and stops with it" default:"can1" env:"PADCAN_INTERFACE"`
	Mapping   string `help:"Mapping file passed to the service" env:"PADCAN_MAPPING"`
}

// Uninstall removes the service registered by Install.
type Uninstall struct{}

func (i *Install) Run(logger *slog.Logger) error {
	exe, err := currentExecutable()
	if err != nil {
		return err
	}
	unit, err := i.unit(exe)
	if err != nil {
		return err
	}
	return install(logger, unit)
}

func (u *Uninstall) Run(logger *slog.Logger) error {
	return uninstall(logger)
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

func (i *Install) unit(exe string) (driveUnit, error) {
	u := driveUnit{Exe: exe, Device: i.Device, Interface: i.Interface}
	if i.Mapping != "" {
		// The service does not run from the caller's directory.
		abs, err := filepath.Abs(i.Mapping)
		if err != nil {
			return driveUnit{}, fmt.Errorf("failed to resolve mapping path: %w", err)
		}
		u.Mapping = abs
	}
	return u, nil
}

// driveUnit is a service running `padcan drive` against one joystick and
// one CAN interface.
type driveUnit struct {
	Exe       string
	Device    string
	Interface string
	Mapping   string
}

func (u driveUnit) execStart() string {
	args := []string{
		fmt.Sprintf("%q", u.Exe), "drive",
		"--device", fmt.Sprintf("%q", u.Device),
		"--interface", fmt.Sprintf("%q", u.Interface),
	}
	if u.Mapping != "" {
		args = append(args, "--mapping", fmt.Sprintf("%q", u.Mapping))
	}
	return strings.Join(args, " ")
}

// String renders the unit file. The service is bound to the CAN netdev and
// restarts after a CAN failure only; Select stays a clean stop.
func (u driveUnit) String() string {
	netdev := netdevUnit(u.Interface)
	var sb strings.Builder
	sb.WriteString("[Unit]\n")
	sb.WriteString("Description=padcan gamepad teleoperation on " + u.Interface + "\n")
	sb.WriteString("BindsTo=" + netdev + "\n")
	sb.WriteString("After=" + netdev + "\n")
	sb.WriteString("\n[Service]\n")
	sb.WriteString("Type=simple\n")
	sb.WriteString("ExecStart=" + u.execStart() + "\n")
	sb.WriteString("Restart=on-failure\n")
	sb.WriteString("RestartSec=2\n")
	sb.WriteString("\n[Install]\n")
	sb.WriteString("WantedBy=" + netdev + "\n")
	return sb.String()
}

// netdevUnit names the device unit udev creates for a network interface,
// escaped the way systemd-escape does it.
func netdevUnit(iface string) string {
	var sb strings.Builder
	sb.WriteString("sys-subsystem-net-devices-")
	for i := 0; i < len(iface); i++ {
		c := iface[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '_', c == ':', c == '.' && i > 0:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	sb.WriteString(".device")
	return sb.String()
}
