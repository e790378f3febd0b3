package panel

import (
	"image/color"

	"geniecalc/hal"

	"tinygo.org/x/drivers"
)

// rect is a pixel rectangle on the framebuffer.
type rect struct {
	x, y, w, h int16
}

// fbDisplay draws into the RGB565 framebuffer. It implements drivers.Displayer so
// tinyfont can render straight into it.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.set(int(x), int(y), hal.RGB565(c))
}

func (d *fbDisplay) set(x, y int, pixel uint16) {
	buf := d.fb.Buffer()
	if x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() {
		return
	}
	off := y*d.fb.StrideBytes() + x*2
	if off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display is a no-op; the panel presents whole frames itself.
func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fill(rect{x, y, width, height}, hal.RGB565(c))
	return nil
}

func (d *fbDisplay) fill(r rect, pixel uint16) {
	buf := d.fb.Buffer()
	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(r.x), 0, w)
	y0 := clampInt(int(r.y), 0, h)
	x1 := clampInt(int(r.x)+int(r.w), 0, w)
	y1 := clampInt(int(r.y)+int(r.h), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	lo := byte(pixel)
	hi := byte(pixel >> 8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return hal.ErrNotImplemented
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
