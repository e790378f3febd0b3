package clock

import (
	"testing"
	"time"

	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
	timesvc "geniecalc/calcos/services/time"
)

const testTimeout = 2 * time.Second

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recvTask struct {
	cap kernel.Capability
	out chan<- kernel.Message
}

func (t *recvTask) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.cap)
	if !ok {
		return
	}
	for msg := range ch {
		t.out <- msg
	}
}

func TestDigits(t *testing.T) {
	hm, sec := Digits(proto.WallClock{Hour: 9, Minute: 5, Second: 7})
	if hm != 905 || sec != 7 {
		t.Fatalf("Digits = (%d, %d), want (905, 7)", hm, sec)
	}
	hm, sec = Digits(proto.WallClock{Hour: 23, Minute: 59, Second: 59})
	if hm != 2359 || sec != 59 {
		t.Fatalf("Digits = (%d, %d), want (2359, 59)", hm, sec)
	}
}

func TestTaskWritesDigits(t *testing.T) {
	k := kernel.New()

	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	sinkEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	clk := fixedClock{t: time.Date(2024, 3, 1, 12, 34, 56, 0, time.Local)}
	k.AddTask(timesvc.New(clk, timeEP.Restrict(kernel.RightRecv)))

	out := make(chan kernel.Message, 16)
	k.AddTask(&recvTask{cap: sinkEP.Restrict(kernel.RightRecv), out: out})
	k.AddTask(New(timeEP.Restrict(kernel.RightSend), []kernel.Capability{sinkEP.Restrict(kernel.RightSend)}, kernel.Capability{}))

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for i := uint64(1); ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			k.TickTo(i)
			time.Sleep(100 * time.Microsecond)
		}
	}()

	want := []struct {
		idx uint8
		v   uint16
	}{
		{proto.DigitsHourMinute, 1234},
		{proto.DigitsSecond, 56},
	}
	for _, w := range want {
		select {
		case msg := <-out:
			if proto.Kind(msg.Kind) != proto.MsgDisplayDigits {
				t.Fatalf("expected MsgDisplayDigits, got %s", proto.Kind(msg.Kind))
			}
			idx, v, ok := proto.DecodeDisplayDigitsPayload(msg.Payload())
			if !ok || idx != w.idx || v != w.v {
				t.Fatalf("digits = (%d, %d) ok=%v, want (%d, %d)", idx, v, ok, w.idx, w.v)
			}
		case <-time.After(testTimeout):
			t.Fatal("timed out waiting for digits")
		}
	}

	// The second has not changed, so nothing more is written.
	select {
	case msg := <-out:
		t.Fatalf("unexpected message %s", proto.Kind(msg.Kind))
	case <-time.After(50 * time.Millisecond):
	}
}
