//go:build !linux && !darwin && !windows

package gps

import (
	"fmt"
	"io"
)

func openSerialPort(path string, baud int) (io.ReadWriteCloser, error) {
	return nil, fmt.Errorf("gps serial not supported on this platform")
}
