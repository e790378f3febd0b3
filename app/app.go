// Package app wires the kernel, services and tasks into a running calculator.
package app

import (
	"io"

	"geniecalc/calcos/calc"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/services/console"
	geniesvc "geniecalc/calcos/services/genie"
	"geniecalc/calcos/services/keypad"
	"geniecalc/calcos/services/logger"
	"geniecalc/calcos/services/panel"
	"geniecalc/calcos/services/serial"
	timesvc "geniecalc/calcos/services/time"
	"geniecalc/calcos/tasks/calculator"
	"geniecalc/calcos/tasks/clock"
	"geniecalc/hal"
)

// Config selects optional parts of the system.
type Config struct {
	// Keys are pressed once after the startup clear.
	Keys []calc.Key
	// Console, when set, receives a live text rendering of the panel.
	Console io.Writer
	// Tape prints one line per key to the console or, failing that, the panel.
	Tape bool
}

type system struct {
	k *kernel.Kernel
}

// New initializes and starts the system with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run starts the system and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, Config{})
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	logCap := logEP.Restrict(kernel.RightSend)
	timeCap := timeEP.Restrict(kernel.RightSend)
	calcCap := calcEP.Restrict(kernel.RightSend)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(timesvc.New(h.Clock(), timeEP.Restrict(kernel.RightRecv)))

	var sinks []kernel.Capability
	var tape kernel.Capability

	if port := h.Serial(); port != nil {
		serialEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		genieEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

		k.AddTask(serial.New(port, serialEP.Restrict(kernel.RightRecv), logCap))
		k.AddTask(geniesvc.New(
			genieEP.Restrict(kernel.RightRecv),
			genieEP.Restrict(kernel.RightSend),
			serialEP.Restrict(kernel.RightSend),
			calcCap,
			logCap,
		))
		sinks = append(sinks, genieEP.Restrict(kernel.RightSend))
	}

	if disp := h.Display(); disp != nil {
		panelEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		k.AddTask(panel.New(disp, panelEP.Restrict(kernel.RightRecv)))
		sinks = append(sinks, panelEP.Restrict(kernel.RightSend))
		if cfg.Tape {
			tape = panelEP.Restrict(kernel.RightSend)
		}
	}

	if cfg.Console != nil {
		consoleEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		k.AddTask(console.New(cfg.Console, consoleEP.Restrict(kernel.RightRecv)))
		sinks = append(sinks, consoleEP.Restrict(kernel.RightSend))
		if cfg.Tape {
			tape = consoleEP.Restrict(kernel.RightSend)
		}
	}

	if in := h.Input(); in != nil {
		k.AddTask(keypad.New(in, calcCap, logCap))
	}

	k.AddTask(calculator.New(calcEP.Restrict(kernel.RightRecv), calculator.Config{
		Sinks:  sinks,
		Tape:   tape,
		Log:    logCap,
		Script: cfg.Keys,
	}))
	k.AddTask(clock.New(timeCap, sinks, logCap))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	if led := h.LED(); led != nil {
		led.High()
	}

	return &system{k: k}
}
