package timesvc

import (
	"errors"
	"testing"
	"time"

	timeclient "geniecalc/calcos/client/time"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

const testTimeout = 2 * time.Second

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type funcTask func(ctx *kernel.Context)

func (f funcTask) Run(ctx *kernel.Context) { f(ctx) }

func ticker(k *kernel.Kernel) (stop func()) {
	done := make(chan struct{})
	go func() {
		for i := uint64(1); ; i++ {
			select {
			case <-done:
				return
			default:
			}
			k.TickTo(i)
			time.Sleep(100 * time.Microsecond)
		}
	}()
	return func() { close(done) }
}

func TestSleepAndNow(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	clk := fixedClock{t: time.Date(2024, 1, 2, 7, 8, 9, 0, time.Local)}
	k.AddTask(New(clk, ep.Restrict(kernel.RightRecv)))
	defer ticker(k)()

	type result struct {
		slept uint64
		wc    proto.WallClock
		err   error
	}
	done := make(chan result, 1)
	k.AddTask(funcTask(func(ctx *kernel.Context) {
		start := ctx.NowTick()
		if err := timeclient.Sleep(ctx, ep.Restrict(kernel.RightSend), 10); err != nil {
			done <- result{err: err}
			return
		}
		slept := ctx.NowTick() - start
		wc, err := timeclient.Now(ctx, ep.Restrict(kernel.RightSend))
		done <- result{slept: slept, wc: wc, err: err}
	}))

	select {
	case r := <-done:
		if r.err != nil {
			t.Fatalf("err = %v", r.err)
		}
		if r.slept < 10 {
			t.Fatalf("slept %d ticks, want >= 10", r.slept)
		}
		if r.wc != (proto.WallClock{Hour: 7, Minute: 8, Second: 9}) {
			t.Fatalf("wall clock = %+v", r.wc)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out")
	}
}

func TestNowWithoutClock(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(New(nil, ep.Restrict(kernel.RightRecv)))

	done := make(chan error, 1)
	k.AddTask(funcTask(func(ctx *kernel.Context) {
		_, err := timeclient.Now(ctx, ep.Restrict(kernel.RightSend))
		done <- err
	}))

	select {
	case err := <-done:
		var rerr *proto.RemoteError
		if !errors.As(err, &rerr) || rerr.Code != proto.ErrNotFound {
			t.Fatalf("err = %v, want not_found remote error", err)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out")
	}
}
