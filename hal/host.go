//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Options configures the host HAL.
type Options struct {
	// Width and Height size the framebuffer. Zero selects 320x240.
	Width  int
	Height int

	Serial SerialConfig

	// LogToStderr moves log lines off stdout, which the live console view owns.
	LogToStderr bool
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
	clock  hostClock
	serial Serial

	// headless hosts have no window to show the framebuffer or read keys from.
	headless bool
}

// New returns a host HAL implementation.
func New(opts Options) HAL {
	return newHost(opts)
}

func newHost(opts Options) *hostHAL {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 320, 240
	}

	logger := &hostLogger{w: os.Stdout}
	if opts.LogToStderr {
		logger.w = os.Stderr
	}

	h := &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		fb:     newHostFramebuffer(opts.Width, opts.Height),
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
	}
	if opts.Serial.Path != "" {
		h.serial = newHostSerial(opts.Serial, logger)
	}
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Time() Time       { return h.t }
func (h *hostHAL) Clock() Clock     { return h.clock }
func (h *hostHAL) Serial() Serial   { return h.serial }

func (h *hostHAL) Display() Display {
	if h.headless {
		return nil
	}
	return hostDisplay{fb: h.fb}
}

func (h *hostHAL) Input() Input {
	if h.headless || !hostHasKeyboard {
		return nil
	}
	return hostInput{kbd: h.kbd}
}
type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostClock struct{}

func (hostClock) Now() time.Time { return time.Now() }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		l.logger.WriteLineString("led: on")
	}
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on {
		l.logger.WriteLineString("led: off")
	}
	l.on = false
}
