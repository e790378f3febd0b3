package main

import (
	"bytes"
	"strings"
	"testing"

	"geniecalc/calcos/genie"
)

func TestDump(t *testing.T) {
	var stream []byte
	stream = genie.AppendReportEvent(stream, genie.ObjKeyboard, 0, 129)
	stream = append(stream, genie.ACK, 0x42)
	stream = genie.AppendReportEvent(stream, genie.ObjWinButton, 1, 0)
	stream = append(stream, genie.CmdReportEvent, genie.ObjKeyboard)

	var out bytes.Buffer
	if err := dump(bytes.NewReader(stream), &out); err != nil {
		t.Fatalf("dump: %v", err)
	}

	want := []string{
		"     0  key M+ (keyboard 0)",
		"     6  ack",
		"     7  error: genie: unknown command byte 0x42",
		"     8  button 1",
		"    14  truncated: 2 bytes",
	}
	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("lines = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
