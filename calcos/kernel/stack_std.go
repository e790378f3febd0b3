//go:build !tinygo

package kernel

import "runtime"

// maxStackBytes bounds the trace kept for the panic screen, which only shows the
// innermost frames anyway.
const maxStackBytes = 4 << 10

// captureStack returns the panicking goroutine's trace, truncated to maxStackBytes.
func captureStack() []byte {
	buf := make([]byte, maxStackBytes)
	return buf[:runtime.Stack(buf, false)]
}
