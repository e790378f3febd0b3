//go:build !tinygo && !linux

package hal

import "os"

// openSerial opens the device without touching line settings; configure the port
// with stty beforehand.
func openSerial(path string, _ int) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR, 0)
}
