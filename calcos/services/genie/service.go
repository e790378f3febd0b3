// Package geniesvc links the calculator to a ViSi-Genie display module over the
// serial service.
//
// Inbound REPORT_EVENT frames become calculator keys and form selections. Display
// requests sent to the service endpoint become WRITE_STR and WRITE_OBJ frames.
package geniesvc

import (
	calcclient "geniecalc/calcos/client/calculator"
	logclient "geniecalc/calcos/client/logger"
	serialclient "geniecalc/calcos/client/serial"
	"geniecalc/calcos/genie"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

// Service owns the Genie link.
type Service struct {
	ep   kernel.Capability
	self kernel.Capability

	serialCap kernel.Capability
	calcCap   kernel.Capability
	logCap    kernel.Capability

	dec   genie.Decoder
	frame []byte
}

// New creates the link. ep receives both serial data and display requests; self is a
// send capability to the same endpoint, handed to the serial service as the data sink.
func New(ep, self, serialCap, calcCap, logCap kernel.Capability) *Service {
	return &Service{
		ep:        ep,
		self:      self,
		serialCap: serialCap,
		calcCap:   calcCap,
		logCap:    logCap,
		frame:     make([]byte, 0, 3+genie.MaxStringBytes+1),
	}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	if res := serialclient.Subscribe(ctx, s.serialCap, s.self); res != kernel.SendOK {
		s.logf(ctx, "genie: subscribe to serial: %s", res)
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgSerialData:
			s.dec.Feed(msg.Payload())
			s.drain(ctx)

		case proto.MsgDisplayText:
			box, text, ok := proto.DecodeDisplayTextPayload(msg.Payload())
			if !ok {
				continue
			}
			s.write(ctx, genie.AppendWriteStr(s.frame[:0], box, text))

		case proto.MsgDisplayForm:
			f, ok := proto.DecodeFormPayload(msg.Payload())
			if !ok {
				continue
			}
			s.write(ctx, genie.AppendWriteObj(s.frame[:0], genie.ObjForm, uint8(f), 0))

		case proto.MsgDisplayDigits:
			idx, v, ok := proto.DecodeDisplayDigitsPayload(msg.Payload())
			if !ok {
				continue
			}
			s.write(ctx, genie.AppendWriteObj(s.frame[:0], genie.ObjLEDDigits, idx, v))
		}
	}
}

func (s *Service) drain(ctx *kernel.Context) {
	for {
		r, ok, err := s.dec.Next()
		if err != nil {
			// Decoder errors already carry the "genie:" prefix.
			s.logf(ctx, "%v", err)
			continue
		}
		if !ok {
			return
		}
		s.dispatch(ctx, r)
	}
}

func (s *Service) dispatch(ctx *kernel.Context, r genie.Reply) {
	switch r.Cmd {
	case genie.ACK:
		return
	case genie.NAK:
		s.logf(ctx, "genie: display rejected a frame (nak)")
		return
	case genie.CmdReportEvent:
	default:
		s.logf(ctx, "genie: invalid event: %s", r)
		return
	}

	switch r.Object {
	case genie.ObjKeyboard:
		if r.Index != 0 {
			s.logf(ctx, "genie: unknown keyboard %d", r.Index)
			return
		}
		if res := calcclient.Press(ctx, s.calcCap, r.Data); res != kernel.SendOK {
			s.logf(ctx, "genie: deliver key: %s", res)
		}

	case genie.ObjWinButton:
		var f proto.Form
		switch r.Index {
		case 0:
			f = proto.FormCalculator
		case 1:
			f = proto.FormClock
		default:
			s.logf(ctx, "genie: unknown button %d", r.Index)
			return
		}
		if res := calcclient.SelectForm(ctx, s.calcCap, f); res != kernel.SendOK {
			s.logf(ctx, "genie: select %s form: %s", f, res)
		}

	default:
		s.logf(ctx, "genie: unhandled event: %s", r)
	}
}

func (s *Service) write(ctx *kernel.Context, frame []byte) {
	if res := serialclient.Write(ctx, s.serialCap, frame); res != kernel.SendOK {
		s.logf(ctx, "genie: write frame: %s", res)
	}
}

func (s *Service) logf(ctx *kernel.Context, format string, args ...any) {
	if !s.logCap.Valid() {
		return
	}
	_ = logclient.Logf(ctx, s.logCap, format, args...)
}
