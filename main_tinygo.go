//go:build tinygo

package main

import (
	"geniecalc/app"
	"geniecalc/hal"
)

func main() {
	app.RunWithConfig(hal.New(), app.Config{Tape: true})
}
