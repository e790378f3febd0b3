package calc

import "testing"

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "          0"},
		{5, "          5"},
		{-12.5, "      -12.5"},
		{123456789, "  123456789"},
		{1.0 / 3.0, "0.333333333"},
		{1234567890, "1.23456789e+09"},
	}
	for _, tt := range tests {
		if got := FormatDisplay(tt.v, false); got != tt.want {
			t.Fatalf("FormatDisplay(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
	if got := FormatDisplay(5, true); got != ErrorText {
		t.Fatalf("latched FormatDisplay = %q, want %q", got, ErrorText)
	}
}

func TestFormatStatus(t *testing.T) {
	if got := FormatStatus(true, OpDivide); got != "M /" {
		t.Fatalf("FormatStatus(true, /) = %q", got)
	}
	if got := FormatStatus(false, OpNone); got != "   " {
		t.Fatalf("FormatStatus(false, none) = %q", got)
	}
}

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys("1.5 [M+] [+/-] =a")
	if err != nil {
		t.Fatalf("ParseKeys: %v", err)
	}
	want := []Key{Digit(1), KeyDecimal, Digit(5), KeyMemAdd, KeySign, KeyEquals, KeyClearAll}
	if len(keys) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(keys), len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys[%d] = %s, want %s", i, keys[i], want[i])
		}
	}

	if _, err := ParseKeys("[M*]"); err == nil {
		t.Fatal("unknown name should fail")
	}
	if _, err := ParseKeys("1[MS"); err == nil {
		t.Fatal("unterminated name should fail")
	}
}

func TestKeyString(t *testing.T) {
	if got := KeySign.String(); got != "+/-" {
		t.Fatalf("KeySign.String() = %q", got)
	}
	if got := Key(0x7e).String(); got != "0x7E" {
		t.Fatalf("Key(0x7e).String() = %q", got)
	}
}
