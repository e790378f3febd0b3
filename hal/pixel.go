package hal

import "image/color"

// RGB565 packs an 8-bit-per-channel colour into the framebuffer pixel format.
func RGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// RGBAFrom565 expands a framebuffer pixel, scaling each channel back to the full
// 0..255 range so white stays white.
func RGBAFrom565(p uint16) color.RGBA {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return color.RGBA{
		R: uint8(r * 255 / 31),
		G: uint8(g * 255 / 63),
		B: uint8(b * 255 / 31),
		A: 0xFF,
	}
}

// PutRGB565 stores p little-endian at pixel offset i of buf.
func PutRGB565(buf []byte, i int, p uint16) {
	buf[2*i] = byte(p)
	buf[2*i+1] = byte(p >> 8)
}
