// Package keypad turns host keyboard events into calculator keys and form selections.
package keypad

import (
	"geniecalc/calcos/calc"
	calcclient "geniecalc/calcos/client/calculator"
	logclient "geniecalc/calcos/client/logger"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
	"geniecalc/hal"
)

// unmapped is forwarded for keys with no calculator meaning so the session reports
// them instead of them vanishing here.
const unmapped uint16 = 0xFFFF

// Action is what a key event asks for.
type Action uint8

const (
	ActionNone Action = iota
	ActionKey
	ActionForm
)

// Binding is the result of mapping one key event.
type Binding struct {
	Action Action
	Code   uint16
	Form   proto.Form
}

var runeKeys = map[rune]calc.Key{
	'a': calc.KeyClearAll,
	'c': calc.KeyClearEntry,
	'm': calc.KeyMemStore,
	'p': calc.KeyMemAdd,
	'o': calc.KeyMemSubtract,
	'r': calc.KeyMemRecall,
	'x': calc.KeyMemClear,
	'n': calc.KeySign,
	's': calc.KeySqrt,
	'.': calc.KeyDecimal,
	',': calc.KeyDecimal,
	'+': calc.KeyAdd,
	'-': calc.KeySubtract,
	'*': calc.KeyMultiply,
	'/': calc.KeyDivide,
	'=': calc.KeyEquals,
}

// Map binds a key press. Releases map to ActionNone.
func Map(ev hal.KeyEvent) Binding {
	if !ev.Press {
		return Binding{}
	}

	switch ev.Code {
	case hal.KeyEnter:
		return key(calc.KeyEquals)
	case hal.KeyEscape, hal.KeyDelete:
		return key(calc.KeyClearAll)
	case hal.KeyBackspace:
		return key(calc.KeyClearEntry)
	case hal.KeyF1:
		return Binding{Action: ActionForm, Form: proto.FormCalculator}
	case hal.KeyF2, hal.KeyTab:
		return Binding{Action: ActionForm, Form: proto.FormClock}
	}

	r := ev.Rune
	switch {
	case r == 0:
		return Binding{}
	case r >= '0' && r <= '9':
		return key(calc.Key(r))
	}
	if k, ok := runeKeys[r]; ok {
		return key(k)
	}
	if r < 0x80 {
		return Binding{Action: ActionKey, Code: uint16(r)}
	}
	return Binding{Action: ActionKey, Code: unmapped}
}

func key(k calc.Key) Binding {
	return Binding{Action: ActionKey, Code: uint16(k)}
}

// Service reads the HAL keyboard and feeds the calculator task.
type Service struct {
	in      hal.Input
	calcCap kernel.Capability
	logCap  kernel.Capability
}

func New(in hal.Input, calcCap kernel.Capability, logCap kernel.Capability) *Service {
	return &Service{in: in, calcCap: calcCap, logCap: logCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if s.in == nil {
		return
	}
	kbd := s.in.Keyboard()
	if kbd == nil {
		return
	}
	events := kbd.Events()
	if events == nil {
		return
	}

	for ev := range events {
		b := Map(ev)
		var res kernel.SendResult
		switch b.Action {
		case ActionKey:
			res = calcclient.Press(ctx, s.calcCap, b.Code)
		case ActionForm:
			res = calcclient.SelectForm(ctx, s.calcCap, b.Form)
		default:
			continue
		}
		if res != kernel.SendOK && s.logCap.Valid() {
			_ = logclient.Logf(ctx, s.logCap, "keypad: deliver: %s", res)
		}
	}
}
