// Package config defines the padcan command line, which is also the shape of
// its configuration files.
package config

import "github.com/padcan/padcan/internal/cmd"

// CLI is the root kong command.
type CLI struct {
	Config string `help:"Configuration file (JSON, YAML or TOML)" env:"PADCAN_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Drive     cmd.Drive         `cmd:"" default:"withargs" help:"Drive the vehicle with the gamepad (default)"`
	Send      cmd.Send          `cmd:"" help:"Send a single CAN frame"`
	Monitor   cmd.Monitor       `cmd:"" help:"Log motor frames seen on the CAN bus"`
	Events    cmd.Events        `cmd:"" help:"Print decoded gamepad events"`
	Cfg       cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Install   cmd.Install       `cmd:"" help:"Install the drive loop as a systemd service"`
	Uninstall cmd.Uninstall     `cmd:"" help:"Remove the systemd service"`
}

// Log configures the process loggers.
type Log struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"PADCAN_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"PADCAN_LOG_FILE"`
	RawFile string `help:"Write a hex dump of every CAN frame and joystick record to this file" env:"PADCAN_LOG_RAW_FILE"`
}
