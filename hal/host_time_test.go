//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func drain(ch <-chan uint64) (last uint64, n int) {
	for {
		select {
		case v := <-ch:
			last = v
			n++
		default:
			return last, n
		}
	}
}

func TestHostTimeAdvance(t *testing.T) {
	ht := newHostTime()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ht.advance(base)
	if last, n := drain(ht.ch); n != 1 || last != 1 {
		t.Fatalf("first advance: last=%d n=%d, want 1 tick", last, n)
	}

	ht.advance(base.Add(2500 * time.Microsecond))
	if last, n := drain(ht.ch); n != 2 || last != 3 {
		t.Fatalf("after 2.5ms: last=%d n=%d, want 2 ticks ending at 3", last, n)
	}

	// The leftover half tick carries into the next frame.
	ht.advance(base.Add(3 * time.Millisecond))
	if last, n := drain(ht.ch); n != 1 || last != 4 {
		t.Fatalf("after 3ms: last=%d n=%d, want 1 tick ending at 4", last, n)
	}
}

func TestHostTimeDropsWhenFull(t *testing.T) {
	ht := newHostTime()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ht.advance(base)
	ht.advance(base.Add(2 * time.Second))

	if _, n := drain(ht.ch); n != cap(ht.ch) {
		t.Fatalf("buffered ticks = %d, want %d", n, cap(ht.ch))
	}
	if ht.seq != 2001 {
		t.Fatalf("seq = %d, want 2001", ht.seq)
	}
}
