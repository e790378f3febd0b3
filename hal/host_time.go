//go:build !tinygo

package hal

import "time"

// hostTickPeriod is the length of one kernel tick on the host.
const hostTickPeriod = time.Millisecond

// hostTime turns wall-clock progress between frames into kernel ticks. Ticks that
// would overflow the channel are dropped; the kernel only cares about the latest.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last    time.Time
	pending time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// advance emits one tick per elapsed hostTickPeriod since the previous call. The
// first call emits a single tick.
func (t *hostTime) advance(now time.Time) {
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}
	t.pending += now.Sub(t.last)
	t.last = now

	n := t.pending / hostTickPeriod
	t.pending -= n * hostTickPeriod
	t.emit(uint64(n))
}

func (t *hostTime) emit(n uint64) {
	for ; n > 0; n-- {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
