// Package genie encodes and decodes the ViSi-Genie serial protocol spoken by
// 4D Systems display modules.
//
// Every frame ends with a checksum byte: the XOR of all preceding bytes of the frame.
package genie

import "fmt"

// Command bytes the link speaks. REPORT_OBJ is decoded but never sent.
const (
	CmdWriteObj    byte = 0x01
	CmdWriteStr    byte = 0x02
	CmdReportObj   byte = 0x05
	CmdReportEvent byte = 0x07

	ACK byte = 0x06
	NAK byte = 0x15
)

// Object types used by the calculator panel.
const (
	ObjWinButton byte = 6
	ObjForm      byte = 10
	ObjKeyboard  byte = 13
	ObjLEDDigits byte = 15
)

// MaxStringBytes is the longest payload a WRITE_STR frame can carry.
const MaxStringBytes = 255

// Reply is a decoded frame received from the display.
type Reply struct {
	Cmd    byte
	Object byte
	Index  byte
	Data   uint16
}

func (r Reply) String() string {
	switch r.Cmd {
	case ACK:
		return "ack"
	case NAK:
		return "nak"
	}
	return fmt.Sprintf("cmd=0x%02X object=%d index=%d data=%d", r.Cmd, r.Object, r.Index, r.Data)
}

func checksum(b []byte) byte {
	var cs byte
	for _, c := range b {
		cs ^= c
	}
	return cs
}

// AppendWriteObj appends a WRITE_OBJ frame setting object (obj, idx) to v.
func AppendWriteObj(dst []byte, obj, idx byte, v uint16) []byte {
	start := len(dst)
	dst = append(dst, CmdWriteObj, obj, idx, byte(v>>8), byte(v))
	return append(dst, checksum(dst[start:]))
}

// AppendWriteStr appends a WRITE_STR frame for strings object idx.
// Text longer than MaxStringBytes is truncated.
func AppendWriteStr(dst []byte, idx byte, text string) []byte {
	if len(text) > MaxStringBytes {
		text = text[:MaxStringBytes]
	}
	start := len(dst)
	dst = append(dst, CmdWriteStr, idx, byte(len(text)))
	dst = append(dst, text...)
	return append(dst, checksum(dst[start:]))
}

// AppendReportEvent appends a REPORT_EVENT frame, as the display sends it.
func AppendReportEvent(dst []byte, obj, idx byte, v uint16) []byte {
	start := len(dst)
	dst = append(dst, CmdReportEvent, obj, idx, byte(v>>8), byte(v))
	return append(dst, checksum(dst[start:]))
}
