// Package clock keeps the clock form's LED digits in step with the wall clock.
package clock

import (
	displayclient "geniecalc/calcos/client/display"
	logclient "geniecalc/calcos/client/logger"
	timeclient "geniecalc/calcos/client/time"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

// PollTicks is how often the wall clock is sampled. The digits change at most 1/10 s
// after the second rolls over.
const PollTicks = 100

// Digits converts a wall-clock reading into the two LED digit values:
// hour*100+minute and second.
func Digits(wc proto.WallClock) (hourMinute, second uint16) {
	return uint16(wc.Hour)*100 + uint16(wc.Minute), uint16(wc.Second)
}

// Task writes the clock digits to every sink once per second. It never touches the
// calculator session.
type Task struct {
	timeCap kernel.Capability
	sinks   []kernel.Capability
	logCap  kernel.Capability
}

func New(timeCap kernel.Capability, sinks []kernel.Capability, logCap kernel.Capability) *Task {
	return &Task{timeCap: timeCap, sinks: sinks, logCap: logCap}
}

func (t *Task) Run(ctx *kernel.Context) {
	lastSecond := -1
	var lastErr string

	for {
		if err := timeclient.Sleep(ctx, t.timeCap, PollTicks); err != nil {
			lastErr = t.report(ctx, lastErr, err)
			ctx.BlockOnTick()
			continue
		}

		wc, err := timeclient.Now(ctx, t.timeCap)
		if err != nil {
			lastErr = t.report(ctx, lastErr, err)
			continue
		}
		lastErr = ""

		if int(wc.Second) == lastSecond {
			continue
		}
		lastSecond = int(wc.Second)

		hm, sec := Digits(wc)
		for _, sink := range t.sinks {
			if !sink.Valid() {
				continue
			}
			_ = displayclient.Digits(ctx, sink, proto.DigitsHourMinute, hm)
			_ = displayclient.Digits(ctx, sink, proto.DigitsSecond, sec)
		}
	}
}

func (t *Task) report(ctx *kernel.Context, last string, err error) string {
	msg := err.Error()
	if msg != last && t.logCap.Valid() {
		_ = logclient.Log(ctx, t.logCap, "clock: "+msg)
	}
	return msg
}
