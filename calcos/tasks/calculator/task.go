// Package calculator runs the calculator session as a kernel task.
package calculator

import (
	"errors"
	"fmt"

	"geniecalc/calcos/calc"
	displayclient "geniecalc/calcos/client/display"
	logclient "geniecalc/calcos/client/logger"
	termclient "geniecalc/calcos/client/term"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

// Config wires the task to its collaborators. Zero capabilities are skipped.
type Config struct {
	// Sinks receive every display update and form change.
	Sinks []kernel.Capability
	// Tape receives one line per accepted key.
	Tape kernel.Capability
	Log  kernel.Capability
	// Script is pressed once at startup, after the session is cleared.
	Script []calc.Key
}

// Task owns the calculator session. Keys arrive one at a time on its endpoint.
type Task struct {
	ep  kernel.Capability
	cfg Config

	session *calc.Session
}

func New(ep kernel.Capability, cfg Config) *Task {
	return &Task{ep: ep, cfg: cfg}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}

	t.session = calc.NewSession()
	t.showForm(ctx, proto.FormCalculator)
	t.press(ctx, calc.KeyClearAll)

	for _, k := range t.cfg.Script {
		t.press(ctx, k)
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgCalcKey:
			code, ok := proto.DecodeCalcKeyPayload(msg.Payload())
			if !ok {
				t.logf(ctx, "calc: bad key payload (%d bytes)", msg.Len)
				continue
			}
			t.press(ctx, calc.Key(code))

		case proto.MsgFormSelect:
			f, ok := proto.DecodeFormPayload(msg.Payload())
			if !ok {
				continue
			}
			t.selectForm(ctx, f)
		}
	}
}

func (t *Task) press(ctx *kernel.Context, k calc.Key) {
	upd, err := t.session.Handle(k)
	if errors.Is(err, calc.ErrLatched) {
		return
	}
	if err != nil {
		t.logf(ctx, "%v", err)
	}
	t.publish(ctx, upd)

	if t.cfg.Tape.Valid() {
		_ = termclient.WriteLine(ctx, t.cfg.Tape, tapeLine(k, upd))
	}
}

func (t *Task) publish(ctx *kernel.Context, upd calc.DisplayUpdate) {
	for _, sink := range t.cfg.Sinks {
		if !sink.Valid() {
			continue
		}
		if res := displayclient.Show(ctx, sink, upd); res != kernel.SendOK {
			t.logf(ctx, "calc: display update: %s", res)
		}
	}
}

func (t *Task) selectForm(ctx *kernel.Context, f proto.Form) {
	if f != proto.FormCalculator && f != proto.FormClock {
		t.logf(ctx, "calc: unknown form %d", f)
		return
	}
	t.showForm(ctx, f)
	if f == proto.FormCalculator {
		t.publish(ctx, t.session.Update())
	}
}

func (t *Task) showForm(ctx *kernel.Context, f proto.Form) {
	for _, sink := range t.cfg.Sinks {
		if !sink.Valid() {
			continue
		}
		if res := displayclient.Form(ctx, sink, f); res != kernel.SendOK {
			t.logf(ctx, "calc: select %s form: %s", f, res)
		}
	}
}

func (t *Task) logf(ctx *kernel.Context, format string, args ...any) {
	if !t.cfg.Log.Valid() {
		return
	}
	_ = logclient.Logf(ctx, t.cfg.Log, format, args...)
}

func tapeLine(k calc.Key, upd calc.DisplayUpdate) string {
	return fmt.Sprintf("%-4s%s %s", k, upd.Text, upd.Status)
}
