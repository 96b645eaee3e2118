//go:build !linux

package gamepad

import (
	"errors"
	"os"
)

func deviceName(*os.File) (string, error) {
	return "", errors.New("device name query is only supported on linux")
}
