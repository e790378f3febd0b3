package app

import (
	"fmt"
	"image/color"
	"strings"

	"geniecalc/calcos/kernel"
	"geniecalc/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	panicLineHeight = 10
	panicBaseline   = 8
)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			select {}
		}
		fb := disp.Framebuffer()
		if fb == nil || fb.Buffer() == nil {
			select {}
		}

		fb.ClearRGB(0x60, 0, 0)
		d := panicDisplay{fb: fb}
		font := &proggy.TinySZ8pt7b
		fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

		y := int16(0)
		for _, line := range lines {
			for _, row := range wrapToWidth(font, line, fb.Width()-4) {
				if int(y)+panicLineHeight > fb.Height() {
					_ = fb.Present()
					select {}
				}
				tinyfont.WriteLine(d, font, 2, y+panicBaseline, row, fg)
				y += panicLineHeight
			}
		}

		_ = fb.Present()
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		fmt.Sprintf("calcos panic: task=%d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line = strings.TrimRight(line, " \t"); line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}
	return lines
}

// wrapToWidth breaks s into rows no wider than maxW pixels.
func wrapToWidth(font tinyfont.Fonter, s string, maxW int) []string {
	var rows []string
	for s != "" {
		r := []rune(s)
		n := len(r)
		for n > 1 {
			w, _ := tinyfont.LineWidth(font, string(r[:n]))
			if int(w) <= maxW {
				break
			}
			n--
		}
		rows = append(rows, string(r[:n]))
		s = strings.TrimLeft(string(r[n:]), " ")
	}
	return rows
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	pixel := uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }
