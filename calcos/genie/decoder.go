package genie

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand reports a byte that does not start any known reply frame.
var ErrUnknownCommand = errors.New("genie: unknown command byte")

// ChecksumError reports a frame whose checksum byte did not match.
type ChecksumError struct {
	Frame []byte
	Want  byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("genie: bad checksum in % X (want 0x%02X)", e.Frame, e.Want)
}

// Decoder turns a byte stream from the display into replies.
//
// Bytes may arrive split across Feed calls. On a bad frame the decoder skips one byte
// and resynchronises on the next.
type Decoder struct {
	buf []byte
}

// Feed appends bytes received from the display.
func (d *Decoder) Feed(b []byte) {
	d.buf = append(d.buf, b...)
}

// Buffered returns the number of bytes waiting for the rest of a frame.
func (d *Decoder) Buffered() int { return len(d.buf) }

// Next returns the next complete reply.
//
// ok is false when more bytes are needed. A non-nil error means a byte or frame was
// discarded; callers should log it and call Next again.
func (d *Decoder) Next() (r Reply, ok bool, err error) {
	if len(d.buf) == 0 {
		return Reply{}, false, nil
	}

	switch d.buf[0] {
	case ACK, NAK:
		r = Reply{Cmd: d.buf[0]}
		d.consume(1)
		return r, true, nil

	case CmdReportEvent, CmdReportObj:
		if len(d.buf) < 6 {
			return Reply{}, false, nil
		}
		frame := d.buf[:6]
		if cs := checksum(frame[:5]); cs != frame[5] {
			err := &ChecksumError{Frame: append([]byte(nil), frame...), Want: cs}
			d.consume(1)
			return Reply{}, false, err
		}
		r = Reply{
			Cmd:    frame[0],
			Object: frame[1],
			Index:  frame[2],
			Data:   uint16(frame[3])<<8 | uint16(frame[4]),
		}
		d.consume(6)
		return r, true, nil

	default:
		c := d.buf[0]
		d.consume(1)
		return Reply{}, false, fmt.Errorf("%w 0x%02X", ErrUnknownCommand, c)
	}
}

func (d *Decoder) consume(n int) {
	rest := copy(d.buf, d.buf[n:])
	d.buf = d.buf[:rest]
}
