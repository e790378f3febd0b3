package panel

import (
	"image/color"

	"geniecalc/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	tapeFontHeight = 10
	tapeFontOffset = 6
)

// tape is the paper-tape strip under the calculator boxes.
//
// tinyterm scrolls by moving the display's start line, the way LCD controllers with
// hardware scroll do. tape keeps its own pixel memory and applies the start line when
// it copies that memory onto the framebuffer.
type tape struct {
	area rect
	mem  []uint16
	// scroll is the memory row shown at the top of the area.
	scroll int16

	term *tinyterm.Terminal
}

func newTape(area rect) *tape {
	area.h -= area.h % tapeFontHeight
	t := &tape{
		area: area,
		mem:  make([]uint16, int(area.w)*int(area.h)),
	}
	t.reset()
	return t
}

func (t *tape) reset() {
	for i := range t.mem {
		t.mem[i] = 0
	}
	t.scroll = 0
	t.term = tinyterm.NewTerminal(t)
	t.term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: tapeFontHeight,
		FontOffset: tapeFontOffset,
	})
}

func (t *tape) Write(b []byte) (int, error) {
	return t.term.Write(b)
}

func (t *tape) Size() (x, y int16) { return t.area.w, t.area.h }

func (t *tape) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || x >= t.area.w || y < 0 || y >= t.area.h {
		return
	}
	t.mem[int(y)*int(t.area.w)+int(x)] = hal.RGB565(c)
}

// Display is a no-op; blit copies the memory out when the panel redraws.
func (t *tape) Display() error { return nil }

func (t *tape) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	pixel := hal.RGB565(c)
	x0 := clampInt(int(x), 0, int(t.area.w))
	y0 := clampInt(int(y), 0, int(t.area.h))
	x1 := clampInt(int(x)+int(width), 0, int(t.area.w))
	y1 := clampInt(int(y)+int(height), 0, int(t.area.h))
	for py := y0; py < y1; py++ {
		row := t.mem[py*int(t.area.w):]
		for px := x0; px < x1; px++ {
			row[px] = pixel
		}
	}
	return nil
}

func (t *tape) SetScroll(line int16) {
	if t.area.h > 0 {
		t.scroll = line % t.area.h
	}
}

func (t *tape) SetRotation(rotation drivers.Rotation) error { return nil }

// blit copies the tape onto the framebuffer, oldest line at the top.
func (t *tape) blit(d *fbDisplay) {
	w := int(t.area.w)
	h := int(t.area.h)
	for sy := 0; sy < h; sy++ {
		my := (sy + int(t.scroll)) % h
		row := t.mem[my*w : my*w+w]
		for x, p := range row {
			d.set(int(t.area.x)+x, int(t.area.y)+sy, p)
		}
	}
}
