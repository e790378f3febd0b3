//go:build !tinygo && !cgo

package hal

// Without cgo there is no window backend, so no key events are ever produced and
// Input reports no device.
const hostHasKeyboard = false

type hostKeyboard struct{}

func newHostKeyboard() *hostKeyboard { return nil }

func (k *hostKeyboard) Events() <-chan KeyEvent { return nil }
