//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type tinyGoClock struct{}

func (tinyGoClock) Now() time.Time { return time.Now() }

type usbLogger struct{}

func (l *usbLogger) WriteLineString(s string) {
	_, _ = machine.Serial.Write([]byte(s))
	_, _ = machine.Serial.Write([]byte{'\r', '\n'})
}

func (l *usbLogger) WriteLineBytes(b []byte) {
	_, _ = machine.Serial.Write(b)
	_, _ = machine.Serial.Write([]byte{'\r', '\n'})
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// uartSerial polls the UART's receive buffer; UART.Read does not block.
type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Read(p []byte) (int, error) {
	for {
		n, err := s.uart.Read(p)
		if n > 0 || err != nil {
			return n, err
		}
		time.Sleep(time.Millisecond)
	}
}

func (s *uartSerial) Write(p []byte) (int, error) {
	return s.uart.Write(p)
}
