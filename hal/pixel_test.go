package hal

import (
	"image/color"
	"testing"
)

func TestRGB565(t *testing.T) {
	tests := []struct {
		c    color.RGBA
		want uint16
	}{
		{color.RGBA{0, 0, 0, 0xFF}, 0x0000},
		{color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFF},
		{color.RGBA{0xFF, 0, 0, 0xFF}, 0xF800},
		{color.RGBA{0, 0xFF, 0, 0xFF}, 0x07E0},
		{color.RGBA{0, 0, 0xFF, 0xFF}, 0x001F},
	}
	for _, tt := range tests {
		if got := RGB565(tt.c); got != tt.want {
			t.Fatalf("RGB565(%v) = 0x%04X, want 0x%04X", tt.c, got, tt.want)
		}
	}
}

func TestRGBAFrom565KeepsExtremes(t *testing.T) {
	if got := RGBAFrom565(0xFFFF); got != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Fatalf("white = %v", got)
	}
	if got := RGBAFrom565(0); got != (color.RGBA{0, 0, 0, 0xFF}) {
		t.Fatalf("black = %v", got)
	}
}

func TestPutRGB565(t *testing.T) {
	buf := make([]byte, 4)
	PutRGB565(buf, 1, 0xF800)
	if buf[2] != 0x00 || buf[3] != 0xF8 {
		t.Fatalf("buf = % X", buf)
	}
}
