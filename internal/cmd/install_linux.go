//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const serviceName = "padcan.service"

// systemd manages the padcan unit under unitDir through run, which
// executes one systemctl invocation.
type systemd struct {
	unitDir string
	run     func(args ...string) error
}

var hostSystemd = systemd{unitDir: "/etc/systemd/system", run: systemctl}

func install(logger *slog.Logger, unit driveUnit) error {
	return hostSystemd.install(logger, unit)
}

func uninstall(logger *slog.Logger) error {
	return hostSystemd.uninstall(logger)
}

func (s systemd) unitPath() string { return filepath.Join(s.unitDir, serviceName) }

// install writes the unit and enables it. The service is started right away
// only if the CAN interface already exists; otherwise udev starts it when the
// interface appears.
func (s systemd) install(logger *slog.Logger, unit driveUnit) error {
	path := s.unitPath()
	if err := os.WriteFile(path, []byte(unit.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := s.run("daemon-reload"); err != nil {
		return err
	}
	if err := s.run("enable", serviceName); err != nil {
		return err
	}

	if !interfaceExists(unit.Interface) {
		logger.Warn("CAN interface not present, service will start when it appears",
			"interface", unit.Interface, "unit", netdevUnit(unit.Interface))
	} else if err := s.run("restart", serviceName); err != nil {
		return err
	}

	logger.Info("Drive service installed", "path", path, "exec", unit.execStart())
	return nil
}

// uninstall tears down as much as it can and reports every failure.
func (s systemd) uninstall(logger *slog.Logger) error {
	path := s.unitPath()
	errs := []error{
		s.run("disable", "--now", serviceName),
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}
	errs = append(errs, s.run("daemon-reload"))

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("Drive service removed", "path", path)
	return nil
}

func interfaceExists(iface string) bool {
	_, err := os.Stat(filepath.Join("/sys/class/net", iface))
	return err == nil
}

func systemctl(args ...string) error {
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
