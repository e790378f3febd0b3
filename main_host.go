//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"geniecalc/app"
	"geniecalc/calcos/calc"
	"geniecalc/hal"
	"geniecalc/internal/buildinfo"

	"github.com/mattn/go-isatty"
)

func main() {
	var (
		cfg     hal.HeadlessConfig
		opts    hal.Options
		keys    string
		console bool
		tape    bool
		version bool
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&opts.Serial.Path, "serial", "", "Serial device of the Genie display (e.g. "+hal.DefaultSerialPath+"); empty disables the link.")
	flag.IntVar(&opts.Serial.Baud, "baud", hal.DefaultBaud, "Serial baud rate.")
	flag.BoolVar(&opts.Serial.Wait, "wait-device", false, "Wait for the serial device to appear instead of retrying.")
	flag.StringVar(&keys, "keys", "", "Keys to press at startup, e.g. \"12+30=[M+]\".")
	flag.BoolVar(&console, "console", isatty.IsTerminal(os.Stdout.Fd()), "Show the panel on the terminal in headless mode.")
	flag.BoolVar(&tape, "tape", true, "Print a tape line for every key.")
	flag.BoolVar(&version, "version", false, "Print the build version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	script, err := calc.ParseKeys(keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "-keys: %v\n", err)
		os.Exit(2)
	}
	appCfg := app.Config{Keys: script, Tape: tape}

	if cfg.Enabled {
		if console {
			appCfg.Console = os.Stdout
			opts.LogToStderr = true
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, opts, cfg, func(h hal.HAL) func() error {
			return app.NewWithConfig(h, appCfg)
		}); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(opts, func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
