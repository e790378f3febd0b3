package app

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"geniecalc/calcos/calc"
	"geniecalc/hal"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testLogger struct{ lines *lockedBuffer }

func (l testLogger) WriteLineString(s string) { _, _ = l.lines.Write([]byte(s + "\n")) }
func (l testLogger) WriteLineBytes(b []byte)  { _, _ = l.lines.Write(append(b, '\n')) }

type testTime struct{ ch chan uint64 }

func (t testTime) Ticks() <-chan uint64 { return t.ch }

type testClock struct{}

func (testClock) Now() time.Time { return time.Date(2024, 5, 6, 10, 20, 30, 0, time.Local) }

type testHAL struct {
	log testLogger
	t   testTime
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) LED() hal.LED         { return nil }
func (h *testHAL) Display() hal.Display { return nil }
func (h *testHAL) Input() hal.Input     { return nil }
func (h *testHAL) Time() hal.Time       { return h.t }
func (h *testHAL) Clock() hal.Clock     { return testClock{} }
func (h *testHAL) Serial() hal.Serial   { return nil }

// feedTicks sends an increasing tick every millisecond until stop closes.
func feedTicks(ch chan<- uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	var seq uint64
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			seq++
			select {
			case ch <- seq:
			case <-stop:
				return
			}
		}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHeadlessSystemRunsScript(t *testing.T) {
	keys, err := calc.ParseKeys("2+3=")
	if err != nil {
		t.Fatal(err)
	}

	logs := &lockedBuffer{}
	h := &testHAL{log: testLogger{lines: logs}, t: testTime{ch: make(chan uint64, 16)}}
	out := &lockedBuffer{}

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	go feedTicks(h.t.ch, stop)

	step := NewWithConfig(h, Config{Keys: keys, Console: out, Tape: true})
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	waitFor(t, "result on console", func() bool {
		return strings.Contains(out.String(), "[          5]")
	})
	waitFor(t, "tape line", func() bool {
		return strings.Contains(out.String(), "=             5")
	})
}
