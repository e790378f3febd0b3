package timesvc

import (
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
	"geniecalc/hal"
)

const maxSleepers = 32

type sleeper struct {
	inUse bool
	due   uint64
	id    uint32
	reply kernel.Capability
}

// Service answers sleep requests against the kernel tick and wall-clock queries
// against the HAL clock.
type Service struct {
	clock hal.Clock
	ep    kernel.Capability

	now      uint64
	sleepers [maxSleepers]sleeper
}

func New(clock hal.Clock, ep kernel.Capability) *Service {
	return &Service{clock: clock, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case now := <-tickCh:
			s.now = now
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.now = ctx.NowTick()
			s.handle(ctx, msg)
		}
		s.wakeReady(ctx)
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	if !msg.Cap.Valid() {
		return
	}

	switch proto.Kind(msg.Kind) {
	case proto.MsgSleep:
		requestID, dt, ok := proto.DecodeSleepPayload(msg.Payload())
		if !ok {
			s.replyError(ctx, msg.Cap, proto.ErrBadMessage, proto.MsgSleep, 0)
			return
		}
		if dt == 0 {
			_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgWake), proto.WakePayload(requestID), kernel.Capability{})
			return
		}
		if !s.schedule(s.now+uint64(dt), requestID, msg.Cap) {
			s.replyError(ctx, msg.Cap, proto.ErrOverflow, proto.MsgSleep, requestID)
		}

	case proto.MsgTimeNow:
		requestID, ok := proto.DecodeTimeNowPayload(msg.Payload())
		if !ok {
			s.replyError(ctx, msg.Cap, proto.ErrBadMessage, proto.MsgTimeNow, 0)
			return
		}
		if s.clock == nil {
			s.replyError(ctx, msg.Cap, proto.ErrNotFound, proto.MsgTimeNow, requestID)
			return
		}
		now := s.clock.Now()
		wc := proto.WallClock{Hour: uint8(now.Hour()), Minute: uint8(now.Minute()), Second: uint8(now.Second())}
		_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgTimeNowResp), proto.TimeNowRespPayload(requestID, wc), kernel.Capability{})

	default:
		s.replyError(ctx, msg.Cap, proto.ErrBadMessage, proto.Kind(msg.Kind), 0)
	}
}

func (s *Service) replyError(ctx *kernel.Context, to kernel.Capability, code proto.ErrCode, ref proto.Kind, requestID uint32) {
	_ = ctx.SendToCapResult(to, uint16(proto.MsgError), proto.ErrorPayload(code, ref, requestID), kernel.Capability{})
}

func (s *Service) schedule(due uint64, requestID uint32, reply kernel.Capability) bool {
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			continue
		}
		s.sleepers[i] = sleeper{inUse: true, due: due, id: requestID, reply: reply}
		return true
	}
	return false
}

func (s *Service) wakeReady(ctx *kernel.Context) {
	for i := range s.sleepers {
		sl := &s.sleepers[i]
		if !sl.inUse || sl.due > s.now {
			continue
		}
		res := ctx.SendToCapResult(sl.reply, uint16(proto.MsgWake), proto.WakePayload(sl.id), kernel.Capability{})
		if res == kernel.SendErrQueueFull {
			// Try again on the next tick.
			continue
		}
		*sl = sleeper{}
	}
}
