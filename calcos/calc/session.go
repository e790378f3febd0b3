// Package calc implements the calculator input engine: a key-driven state machine
// over a display register, an accumulator, a memory register and one pending operator.
package calc

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrLatched is returned for keys dropped while an error is latched.
	ErrLatched = errors.New("calc: error latched, only AC accepted")
	// ErrRepeatedDecimal is returned when the decimal point is pressed twice in one number.
	ErrRepeatedDecimal = errors.New("calc: decimal point already entered")
)

// UnrecognizedKeyError reports a key code outside the calculator alphabet.
type UnrecognizedKeyError struct {
	Key Key
}

func (e *UnrecognizedKeyError) Error() string {
	return fmt.Sprintf("calc: unknown key 0x%02X", uint16(e.Key))
}

// Session is the state of one calculator. The zero value is not ready; use NewSession.
type Session struct {
	display     float64
	accumulator float64
	memory      float64
	pending     Operator

	fault        Fault
	decimalEntry bool
	startNew     bool
	multiplier   float64
}

// NewSession returns a session in the cleared state.
func NewSession() *Session {
	s := &Session{}
	s.clearAll()
	return s
}

func (s *Session) clearAll() {
	*s = Session{
		startNew:   true,
		multiplier: 1.0,
	}
}

// Display returns the current display register.
func (s *Session) Display() float64 { return s.display }

// Accumulator returns the running result register.
func (s *Session) Accumulator() float64 { return s.accumulator }

// Memory returns the memory register.
func (s *Session) Memory() float64 { return s.memory }

// Pending returns the operator waiting for its second operand.
func (s *Session) Pending() Operator { return s.pending }

// Latched reports whether an error is latched.
func (s *Session) Latched() bool { return s.fault != FaultNone }

// Fault returns the fault that set the latch, or FaultNone.
func (s *Session) Fault() Fault { return s.fault }

func (s *Session) latch(f Fault) {
	if s.fault == FaultNone {
		s.fault = f
	}
}

// Update returns the display update for the current state.
func (s *Session) Update() DisplayUpdate {
	return DisplayUpdate{
		Text:   FormatDisplay(s.display, s.Latched()),
		Status: FormatStatus(s.memory != 0.0, s.pending),
	}
}

// Handle applies one key press.
//
// While an error is latched every key but AC is dropped: Handle returns ErrLatched and
// the caller must not redraw. For every other key the returned update reflects the new
// state; a non-nil error (*UnrecognizedKeyError or ErrRepeatedDecimal) only reports a
// key that was ignored.
func (s *Session) Handle(k Key) (DisplayUpdate, error) {
	if s.Latched() && k != KeyClearAll {
		return DisplayUpdate{}, ErrLatched
	}

	if k.IsDigit() {
		s.digit(float64(k - '0'))
		return s.Update(), nil
	}

	var err error
	switch k {
	case KeyClearAll:
		s.clearAll()

	case KeyClearEntry:
		if s.pending != OpNone {
			s.pending = OpNone
		} else {
			s.display = 0.0
			s.decimalEntry = false
			s.startNew = true
		}

	case KeyMemStore:
		s.memory = s.display
	case KeyMemAdd:
		s.memory += s.display
	case KeyMemSubtract:
		s.memory -= s.display
	case KeyMemRecall:
		s.display = s.memory
	case KeyMemClear:
		s.memory = 0.0

	case KeySign:
		s.display = -s.display

	case KeySqrt:
		if s.display < 0.0 {
			s.latch(FaultDomain)
		} else {
			s.display = math.Sqrt(s.display)
			s.decimalEntry = false
			s.startNew = true
		}

	case KeyAdd, KeySubtract, KeyMultiply, KeyDivide:
		if s.pending == OpNone {
			s.accumulator = s.display
		} else {
			s.resolve()
		}
		s.pending = k.operator()
		s.startNew = true
		s.decimalEntry = false

	case KeyEquals:
		if s.pending != OpNone {
			s.resolve()
		}
		s.pending = OpNone
		s.decimalEntry = false
		s.startNew = true
		s.accumulator = 0.0

	case KeyDecimal:
		if s.decimalEntry {
			err = ErrRepeatedDecimal
			break
		}
		if s.startNew {
			s.startNew = false
			s.display = 0.0
		}
		s.multiplier = 0.1
		s.decimalEntry = true

	default:
		err = &UnrecognizedKeyError{Key: k}
	}
	return s.Update(), err
}

func (s *Session) digit(d float64) {
	if s.startNew {
		s.startNew = false
		s.multiplier = 1.0
		s.display = 0.0
	}
	if s.multiplier == 1.0 {
		s.display = s.display*10 + d
		return
	}
	s.display += s.multiplier * d
	s.multiplier /= 10.0
}

func (s *Session) resolve() {
	var f Fault
	s.accumulator, s.display, f = Apply(s.accumulator, s.display, s.pending)
	if f != FaultNone {
		s.latch(f)
	}
}
