package time

import (
	"errors"
	"fmt"
	"sync"

	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

// sendRetryTicks bounds how long a request waits for room in the time service queue.
const sendRetryTicks = 100

// ErrClosed is returned when the reply endpoint is closed while waiting.
var ErrClosed = errors.New("time: reply endpoint closed")

type clientState struct {
	replyCap kernel.Capability
	nextID   uint32
}

// clientStates maps each task's *kernel.Context to its *clientState. A task only
// ever touches its own entry.
var clientStates sync.Map

// Sleep blocks the calling task for dt ticks using the time service.
func Sleep(ctx *kernel.Context, timeCap kernel.Capability, dt uint32) error {
	_, err := request(ctx, timeCap, proto.MsgSleep, proto.MsgWake, func(id uint32) []byte {
		return proto.SleepPayload(id, dt)
	})
	if err != nil {
		return fmt.Errorf("time sleep: %w", err)
	}
	return nil
}

// Now asks the time service for the current local wall-clock time.
func Now(ctx *kernel.Context, timeCap kernel.Capability) (proto.WallClock, error) {
	msg, err := request(ctx, timeCap, proto.MsgTimeNow, proto.MsgTimeNowResp, proto.TimeNowPayload)
	if err != nil {
		return proto.WallClock{}, fmt.Errorf("time now: %w", err)
	}
	_, wc, ok := proto.DecodeTimeNowRespPayload(msg.Payload())
	if !ok {
		return proto.WallClock{}, fmt.Errorf("time now: bad payload")
	}
	return wc, nil
}

func request(
	ctx *kernel.Context,
	timeCap kernel.Capability,
	kind proto.Kind,
	want proto.Kind,
	payload func(requestID uint32) []byte,
) (kernel.Message, error) {
	if ctx == nil {
		return kernel.Message{}, fmt.Errorf("nil context")
	}

	v, _ := clientStates.LoadOrStore(ctx, &clientState{})
	st := v.(*clientState)
	if !st.replyCap.Valid() {
		st.replyCap = ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		if !st.replyCap.Valid() {
			return kernel.Message{}, fmt.Errorf("allocate reply endpoint")
		}
	}
	replySend := st.replyCap.Restrict(kernel.RightSend)
	replyRecv := st.replyCap.Restrict(kernel.RightRecv)

	st.nextID++
	if st.nextID == 0 {
		st.nextID++
	}
	id := st.nextID

	res := ctx.SendToCapRetry(timeCap, uint16(kind), payload(id), replySend, sendRetryTicks)
	if res != kernel.SendOK {
		return kernel.Message{}, fmt.Errorf("send %s: %s", kind, res)
	}

	for {
		msg, ok := ctx.Recv(replyRecv)
		if !ok {
			return kernel.Message{}, ErrClosed
		}
		switch proto.Kind(msg.Kind) {
		case want:
			// Every reply payload starts with the u32 request ID.
			got, ok := proto.DecodeWakePayload(msg.Payload())
			if !ok {
				return kernel.Message{}, fmt.Errorf("%s: bad payload", want)
			}
			if got != id {
				continue
			}
			return msg, nil

		case proto.MsgError:
			rerr, ok := proto.DecodeErrorPayload(msg.Payload())
			if !ok {
				return kernel.Message{}, fmt.Errorf("error reply: bad payload")
			}
			if rerr.RequestID != 0 && rerr.RequestID != id {
				continue
			}
			return kernel.Message{}, rerr
		}
	}
}
