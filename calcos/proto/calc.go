package proto

import "encoding/binary"

// Form identifies a page on the display panel.
type Form uint8

const (
	FormCalculator Form = 0
	FormClock      Form = 1
)

func (f Form) String() string {
	switch f {
	case FormCalculator:
		return "calculator"
	case FormClock:
		return "clock"
	default:
		return "unknown"
	}
}

// Text boxes on the calculator form.
const (
	BoxValue  uint8 = 0
	BoxStatus uint8 = 1
)

// LED digit blocks on the clock form.
const (
	DigitsHourMinute uint8 = 0
	DigitsSecond     uint8 = 1
)

// CalcKeyPayload encodes a MsgCalcKey payload.
//
// Layout (little-endian):
//   - u16: key code as reported by the panel keyboard
func CalcKeyPayload(code uint16) []byte {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, code)
	return buf
}

// DecodeCalcKeyPayload decodes a CalcKeyPayload.
func DecodeCalcKeyPayload(b []byte) (code uint16, ok bool) {
	if len(b) != 2 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

// FormPayload encodes a MsgFormSelect or MsgDisplayForm payload.
//
// Payload format:
//
//	b[0] : Form
func FormPayload(f Form) []byte {
	return []byte{byte(f)}
}

// DecodeFormPayload decodes a FormPayload.
func DecodeFormPayload(b []byte) (f Form, ok bool) {
	if len(b) != 1 {
		return 0, false
	}
	return Form(b[0]), true
}

// DisplayTextPayload encodes a MsgDisplayText payload.
//
// Payload format:
//
//	b[0]  : text box index
//	b[1:] : ASCII text
func DisplayTextPayload(box uint8, text string) []byte {
	b := make([]byte, 1, 1+len(text))
	b[0] = box
	return append(b, text...)
}

// DecodeDisplayTextPayload decodes a DisplayTextPayload.
func DecodeDisplayTextPayload(b []byte) (box uint8, text string, ok bool) {
	if len(b) < 1 {
		return 0, "", false
	}
	return b[0], string(b[1:]), true
}

// DisplayDigitsPayload encodes a MsgDisplayDigits payload.
//
// Layout (little-endian):
//   - u8: digits index
//   - u16: value
func DisplayDigitsPayload(index uint8, value uint16) []byte {
	buf := make([]byte, 3)
	buf[0] = index
	binary.LittleEndian.PutUint16(buf[1:3], value)
	return buf
}

// DecodeDisplayDigitsPayload decodes a DisplayDigitsPayload.
func DecodeDisplayDigitsPayload(b []byte) (index uint8, value uint16, ok bool) {
	if len(b) != 3 {
		return 0, 0, false
	}
	return b[0], binary.LittleEndian.Uint16(b[1:3]), true
}
