package calc

import "math"

const (
	// MaxMagnitude is the largest absolute value the display can hold.
	MaxMagnitude = 999999999.0
	// MinMagnitude is the smallest non-zero absolute value; anything below snaps to zero.
	MinMagnitude = 0.00000001
)

// Operator is a binary arithmetic operator awaiting its second operand.
type Operator uint8

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Glyph returns the status-line character for the operator (space for OpNone).
func (op Operator) Glyph() byte {
	switch op {
	case OpAdd:
		return '+'
	case OpSubtract:
		return '-'
	case OpMultiply:
		return '*'
	case OpDivide:
		return '/'
	default:
		return ' '
	}
}

func (op Operator) String() string {
	if op == OpNone {
		return "none"
	}
	return string(op.Glyph())
}

// Fault is the reason the error latch was set.
type Fault uint8

const (
	FaultNone Fault = iota
	FaultOverflow
	FaultDivideByZero
	FaultDomain
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultOverflow:
		return "overflow"
	case FaultDivideByZero:
		return "divide by zero"
	case FaultDomain:
		return "domain error"
	default:
		return "unknown"
	}
}

// Apply resolves op against the accumulator and the display value.
//
// Both returned registers hold the result. A non-zero fault means the error latch must
// be set. Division by zero is still carried out, so newDisplay may be ±Inf or NaN.
// When more than one fault applies the division fault is reported.
func Apply(acc, display float64, op Operator) (newAcc, newDisplay float64, fault Fault) {
	switch op {
	case OpAdd:
		acc += display
	case OpSubtract:
		acc -= display
	case OpMultiply:
		acc *= display
	case OpDivide:
		if display == 0.0 {
			fault = FaultDivideByZero
		}
		acc /= display
	}
	display = acc

	if math.Abs(display) > MaxMagnitude && fault == FaultNone {
		fault = FaultOverflow
	}
	if math.Abs(display) < MinMagnitude {
		display = 0.0
	}
	return acc, display, fault
}
