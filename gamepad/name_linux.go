//go:build linux

package gamepad

import (
	"bytes"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const nameLen = 128

// JSIOCGNAME(len)
const jsiocgname = 0x80006a13 + (nameLen << 16)

func deviceName(f *os.File) (string, error) {
	buf := make([]byte, nameLen)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), uintptr(jsiocgname), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return "", fmt.Errorf("JSIOCGNAME: %w", errno)
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}
