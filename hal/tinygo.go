//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger *usbLogger
	led    *pinLED
	t      *tinyGoTime
	serial *uartSerial
}

// New returns a Raspberry Pi Pico HAL with the Genie display on UART0.
//
// UART0: GP0 (TX) / GP1 (RX), 115200 8N1. Log lines go to the USB serial console.
// The board has no framebuffer, keyboard or RTC; the wall clock counts from boot.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &tinyGoHAL{
		logger: &usbLogger{},
		led:    &pinLED{pin: ledPin},
		t:      newTinyGoTime(),
		serial: &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Display() Display { return nil }
func (h *tinyGoHAL) Input() Input     { return nil }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Clock() Clock     { return tinyGoClock{} }
func (h *tinyGoHAL) Serial() Serial   { return h.serial }
