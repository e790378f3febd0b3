package panel

import (
	"image/color"
	"testing"

	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
	"geniecalc/hal"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) Present() error          { f.presents++; return nil }

func (f *testFB) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(color.RGBA{R: r, G: g, B: b, A: 0xFF})
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

// count returns how many pixels of r have the given color.
func (f *testFB) count(r rect, pixel uint16) int {
	n := 0
	for y := int(r.y); y < int(r.y+r.h); y++ {
		for x := int(r.x); x < int(r.x+r.w); x++ {
			off := y*f.w*2 + x*2
			if uint16(f.buf[off])|uint16(f.buf[off+1])<<8 == pixel {
				n++
			}
		}
	}
	return n
}

func message(kind proto.Kind, payload []byte) kernel.Message {
	var msg kernel.Message
	msg.Kind = uint16(kind)
	msg.Len = uint16(copy(msg.Data[:], payload))
	return msg
}

func newTestService(fb *testFB) *Service {
	s := New(nil, kernel.Capability{})
	s.setup(fb)
	return s
}

func TestHandleTracksDirtyByForm(t *testing.T) {
	s := newTestService(newTestFB(320, 240))

	if !s.handle(message(proto.MsgDisplayText, proto.DisplayTextPayload(proto.BoxValue, "          7"))) {
		t.Fatal("value text on the calculator form should redraw")
	}
	if s.handle(message(proto.MsgDisplayDigits, proto.DisplayDigitsPayload(proto.DigitsSecond, 5))) {
		t.Fatal("clock digits on the calculator form should not redraw")
	}
	if !s.handle(message(proto.MsgDisplayForm, proto.FormPayload(proto.FormClock))) {
		t.Fatal("form change should redraw")
	}
	if s.handle(message(proto.MsgDisplayText, proto.DisplayTextPayload(proto.BoxStatus, "M  "))) {
		t.Fatal("calculator text on the clock form should not redraw")
	}
	if s.text[proto.BoxStatus] != "M  " || s.digits[proto.DigitsSecond] != 5 {
		t.Fatalf("state = %q %v", s.text, s.digits)
	}
	if s.handle(message(proto.MsgDisplayForm, proto.FormPayload(7))) {
		t.Fatal("unknown form should be ignored")
	}
	if s.form != proto.FormClock {
		t.Fatalf("form = %s, want clock", s.form)
	}
}

func TestRedrawCalculator(t *testing.T) {
	fb := newTestFB(320, 240)
	s := newTestService(fb)

	s.redraw()
	value := hal.RGB565(colorValue)
	if n := fb.count(s.lay.value, value); n != 0 {
		t.Fatalf("empty value box has %d value pixels", n)
	}

	s.handle(message(proto.MsgDisplayText, proto.DisplayTextPayload(proto.BoxValue, "  123456789")))
	s.redraw()
	if n := fb.count(s.lay.value, value); n == 0 {
		t.Fatal("value text not drawn")
	}
	if fb.presents != 2 {
		t.Fatalf("presents = %d, want 2", fb.presents)
	}
}

func TestRedrawClock(t *testing.T) {
	fb := newTestFB(320, 240)
	s := newTestService(fb)

	s.handle(message(proto.MsgDisplayForm, proto.FormPayload(proto.FormClock)))
	s.handle(message(proto.MsgDisplayDigits, proto.DisplayDigitsPayload(proto.DigitsHourMinute, 1234)))
	s.redraw()

	digits := hal.RGB565(colorDigits)
	if n := fb.count(s.lay.clock, digits); n == 0 {
		t.Fatal("clock digits not drawn")
	}
	box := hal.RGB565(colorBox)
	if n := fb.count(s.lay.value, box); n != 0 {
		t.Fatal("calculator box drawn on the clock form")
	}
}

func TestTapeScrollsOldestOut(t *testing.T) {
	tp := newTape(rect{0, 0, 100, 30})
	if tp.area.h != 30 {
		t.Fatalf("tape height = %d, want 30", tp.area.h)
	}
	for i := 0; i < 5; i++ {
		_, _ = tp.Write([]byte("8888\r\n"))
	}
	if tp.scroll < 0 || tp.scroll >= tp.area.h {
		t.Fatalf("scroll = %d outside [0,%d)", tp.scroll, tp.area.h)
	}

	fb := newTestFB(100, 30)
	tp.blit(newFBDisplay(fb))
	if n := fb.count(rect{0, 0, 100, 30}, 0); n == 100*30 {
		t.Fatal("tape blit drew nothing")
	}

	tp.reset()
	fb = newTestFB(100, 30)
	tp.blit(newFBDisplay(fb))
	if n := fb.count(rect{0, 0, 100, 30}, 0); n != 100*30 {
		t.Fatalf("reset tape still has %d lit pixels", 100*30-n)
	}
}
