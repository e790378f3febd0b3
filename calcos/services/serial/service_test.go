package serial

import (
	"bytes"
	"sync"
	"testing"
	"time"

	serialclient "geniecalc/calcos/client/serial"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
	"geniecalc/hal"
)

const testTimeout = 1 * time.Second

type fakeSerial struct {
	rx chan []byte

	mu  sync.Mutex
	tx  bytes.Buffer
	txc chan struct{}
}

func newFakeSerial() *fakeSerial {
	return &fakeSerial{rx: make(chan []byte, 4), txc: make(chan struct{}, 16)}
}

func (s *fakeSerial) Read(p []byte) (int, error) {
	b, ok := <-s.rx
	if !ok {
		return 0, hal.ErrNotImplemented
	}
	return copy(p, b), nil
}

func (s *fakeSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	s.tx.Write(p)
	s.mu.Unlock()
	s.txc <- struct{}{}
	return len(p), nil
}

func (s *fakeSerial) written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.tx.Bytes()...)
}

type funcTask func(ctx *kernel.Context)

func (f funcTask) Run(ctx *kernel.Context) { f(ctx) }

func TestSubscribeWriteAndReceive(t *testing.T) {
	k := kernel.New()
	dev := newFakeSerial()

	serialEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	rxEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(New(dev, serialEP.Restrict(kernel.RightRecv), kernel.Capability{}))

	data := make(chan kernel.Message, 4)
	k.AddTask(funcTask(func(ctx *kernel.Context) {
		serialCap := serialEP.Restrict(kernel.RightSend)
		if res := serialclient.Subscribe(ctx, serialCap, rxEP.Restrict(kernel.RightSend)); res != kernel.SendOK {
			t.Errorf("Subscribe = %s", res)
			return
		}
		if res := serialclient.Write(ctx, serialCap, []byte{0x01, 0x0A, 0x01, 0x00, 0x00, 0x0A}); res != kernel.SendOK {
			t.Errorf("Write = %s", res)
			return
		}
		for {
			msg, ok := ctx.Recv(rxEP.Restrict(kernel.RightRecv))
			if !ok {
				return
			}
			data <- msg
		}
	}))

	select {
	case <-dev.txc:
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for write")
	}
	if got := dev.written(); !bytes.Equal(got, []byte{0x01, 0x0A, 0x01, 0x00, 0x00, 0x0A}) {
		t.Fatalf("written = % X", got)
	}

	// The subscription may land after the first read; resend until it is seen.
	deadline := time.After(testTimeout)
	for {
		dev.rx <- []byte{0x06}
		select {
		case msg := <-data:
			if proto.Kind(msg.Kind) != proto.MsgSerialData || !bytes.Equal(msg.Payload(), []byte{0x06}) {
				t.Fatalf("got %s % X", proto.Kind(msg.Kind), msg.Payload())
			}
			return
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatal("timed out waiting for data")
		}
	}
}
