// Package console shows the panel on a terminal when there is no window: a live
// region redrawn in place, with tape lines scrolling above it.
package console

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"

	"github.com/gosuri/uilive"
)

// Service is a display sink that renders to a terminal. It also accepts terminal
// writes, which are printed as tape lines.
type Service struct {
	ep kernel.Capability
	w  *uilive.Writer

	form   proto.Form
	text   [2]string
	digits [2]uint16
	// partial holds a tape line still waiting for its newline.
	partial []byte
}

// New creates a console sink writing to out.
func New(out io.Writer, ep kernel.Capability) *Service {
	w := uilive.New()
	w.Out = out
	w.RefreshInterval = 50 * time.Millisecond
	return &Service{ep: ep, w: w}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	s.render()

	for msg := range ch {
		if s.handle(msg) {
			s.render()
		}
	}
}

func (s *Service) handle(msg kernel.Message) bool {
	switch proto.Kind(msg.Kind) {
	case proto.MsgDisplayText:
		box, text, ok := proto.DecodeDisplayTextPayload(msg.Payload())
		if !ok || int(box) >= len(s.text) {
			return false
		}
		s.text[box] = text
		return s.form == proto.FormCalculator

	case proto.MsgDisplayForm:
		f, ok := proto.DecodeFormPayload(msg.Payload())
		if !ok || (f != proto.FormCalculator && f != proto.FormClock) {
			return false
		}
		s.form = f
		return true

	case proto.MsgDisplayDigits:
		idx, v, ok := proto.DecodeDisplayDigitsPayload(msg.Payload())
		if !ok || int(idx) >= len(s.digits) {
			return false
		}
		s.digits[idx] = v
		return s.form == proto.FormClock

	case proto.MsgTermWrite:
		s.tape(msg.Payload())
		return true
	}
	return false
}

// tape prints complete lines above the live region.
func (s *Service) tape(b []byte) {
	s.partial = append(s.partial, b...)
	for {
		i := bytes.IndexByte(s.partial, '\n')
		if i < 0 {
			return
		}
		line := bytes.TrimRight(s.partial[:i], "\r")
		fmt.Fprintf(s.w.Bypass(), "%s\n", line)
		s.partial = append(s.partial[:0], s.partial[i+1:]...)
	}
}

func (s *Service) render() {
	switch s.form {
	case proto.FormClock:
		hm := s.digits[proto.DigitsHourMinute]
		fmt.Fprintf(s.w, "clock  %02d:%02d:%02d\n", hm/100%100, hm%100, s.digits[proto.DigitsSecond]%100)
	default:
		fmt.Fprintf(s.w, "[%11s]  %-3s\n", s.text[proto.BoxValue], s.text[proto.BoxStatus])
	}
	_ = s.w.Flush()
}
