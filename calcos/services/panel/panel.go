// Package panel renders the calculator and clock forms on the HAL framebuffer, with a
// paper tape under the calculator boxes.
package panel

import (
	"fmt"
	"image/color"

	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
	"geniecalc/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colorBackground = color.RGBA{R: 0x10, G: 0x14, B: 0x18, A: 0xFF}
	colorBox        = color.RGBA{R: 0x20, G: 0x38, B: 0x28, A: 0xFF}
	colorValue      = color.RGBA{R: 0x90, G: 0xFF, B: 0x90, A: 0xFF}
	colorStatus     = color.RGBA{R: 0xFF, G: 0xD0, B: 0x40, A: 0xFF}
	colorLabel      = color.RGBA{R: 0x80, G: 0x88, B: 0x90, A: 0xFF}
	colorDigits     = color.RGBA{R: 0xFF, G: 0x40, B: 0x30, A: 0xFF}
)

const margin = 8

// layout places the boxes for a framebuffer of the given size.
type layout struct {
	value  rect
	status rect
	tape   rect
	clock  rect
}

func newLayout(w, h int16) layout {
	value := rect{margin, margin, w - 2*margin, 44}
	status := rect{margin, value.y + value.h + 4, 48, 16}
	tapeY := status.y + status.h + 8
	return layout{
		value:  value,
		status: status,
		tape:   rect{margin, tapeY, w - 2*margin, h - tapeY - margin},
		clock:  rect{0, 0, w, h},
	}
}

// Service is a display sink drawing on the framebuffer. It also accepts terminal
// writes, which go to the tape.
type Service struct {
	disp hal.Display
	ep   kernel.Capability

	fb  hal.Framebuffer
	d   *fbDisplay
	lay layout
	tp  *tape

	form   proto.Form
	text   [2]string
	digits [2]uint16
}

func New(disp hal.Display, ep kernel.Capability) *Service {
	return &Service{disp: disp, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	if s.disp == nil {
		return
	}
	s.fb = s.disp.Framebuffer()
	if s.fb == nil || s.fb.Format() != hal.PixelFormatRGB565 || s.fb.Buffer() == nil {
		return
	}

	s.setup(s.fb)
	s.redraw()

	dirty := false

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case <-tickCh:
			if dirty {
				s.redraw()
				dirty = false
			}

		case msg, ok := <-ch:
			if !ok {
				return
			}
			if s.handle(msg) {
				dirty = true
			}
		}
	}
}

func (s *Service) setup(fb hal.Framebuffer) {
	s.fb = fb
	s.d = newFBDisplay(fb)
	w, h := s.d.Size()
	s.lay = newLayout(w, h)
	s.tp = newTape(s.lay.tape)
}

// handle applies one request to the panel state and reports whether it changed.
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
		_, _ = s.tp.Write(msg.Payload())
		return s.form == proto.FormCalculator
	}
	return false
}

func (s *Service) redraw() {
	s.fb.ClearRGB(colorBackground.R, colorBackground.G, colorBackground.B)
	switch s.form {
	case proto.FormClock:
		s.drawClock()
	default:
		s.drawCalculator()
	}
	_ = s.fb.Present()
}

func (s *Service) drawCalculator() {
	v := s.lay.value
	_ = s.d.FillRectangle(v.x, v.y, v.w, v.h, colorBox)
	writeRight(s.d, &freemono.Bold18pt7b, v, 32, s.text[proto.BoxValue], colorValue)

	st := s.lay.status
	tinyfont.WriteLine(s.d, &proggy.TinySZ8pt7b, st.x, st.y+10, s.text[proto.BoxStatus], colorStatus)

	t := s.lay.tape
	tinyfont.WriteLine(s.d, &proggy.TinySZ8pt7b, t.x+t.w-labelWidth("tape"), st.y+10, "tape", colorLabel)
	s.tp.blit(s.d)
}

func (s *Service) drawClock() {
	c := s.lay.clock
	hm := s.digits[proto.DigitsHourMinute]
	hhmm := fmt.Sprintf("%02d:%02d", hm/100%100, hm%100)
	sec := fmt.Sprintf("%02d", s.digits[proto.DigitsSecond]%100)

	w1, _ := tinyfont.LineWidth(&freemono.Bold24pt7b, hhmm)
	w2, _ := tinyfont.LineWidth(&freemono.Bold12pt7b, sec)
	x := c.x + (c.w-int16(w1+w2)-4)/2
	y := c.y + c.h/2 + 12
	tinyfont.WriteLine(s.d, &freemono.Bold24pt7b, x, y, hhmm, colorDigits)
	tinyfont.WriteLine(s.d, &freemono.Bold12pt7b, x+int16(w1)+4, y, sec, colorDigits)
}

// writeRight draws text right-aligned inside r with its baseline at r.y+baseline.
func writeRight(d *fbDisplay, font tinyfont.Fonter, r rect, baseline int16, text string, c color.RGBA) {
	w, _ := tinyfont.LineWidth(font, text)
	x := r.x + r.w - int16(w) - 4
	if x < r.x {
		x = r.x
	}
	tinyfont.WriteLine(d, font, x, r.y+baseline, text, c)
}

func labelWidth(s string) int16 {
	w, _ := tinyfont.LineWidth(&proggy.TinySZ8pt7b, s)
	return int16(w)
}
