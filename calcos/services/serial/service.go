package serial

import (
	"errors"
	"fmt"
	"sync"

	logclient "geniecalc/calcos/client/logger"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
	"geniecalc/hal"
)

// Service routes UART bytes between one subscriber and the HAL serial port.
type Service struct {
	serial hal.Serial
	ep     kernel.Capability
	logCap kernel.Capability

	mu    sync.Mutex
	rxCap kernel.Capability
}

// New creates a serial service.
func New(serial hal.Serial, ep kernel.Capability, logCap kernel.Capability) *Service {
	return &Service{serial: serial, ep: ep, logCap: logCap}
}

// Run handles write requests and streams received bytes to the subscriber.
func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	if s.serial != nil {
		go s.readLoop(ctx)
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgSerialSubscribe:
			s.setRxCap(msg.Cap)
		case proto.MsgSerialWrite:
			if s.serial == nil || len(msg.Payload()) == 0 {
				continue
			}
			if _, err := s.serial.Write(msg.Payload()); err != nil {
				s.logf(ctx, "serial: write: %v", err)
			}
		}
	}
}

func (s *Service) setRxCap(cap kernel.Capability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rxCap = cap
}

func (s *Service) readLoop(ctx *kernel.Context) {
	buf := make([]byte, kernel.MaxMessageBytes)
	var lastErr error
	for {
		n, err := s.serial.Read(buf)
		if n > 0 {
			if err := s.sendData(ctx, buf[:n]); err != nil {
				s.logf(ctx, "serial: %v", err)
			}
		}
		if err != nil {
			// Report each distinct failure once; the HAL reopens the port on its own.
			if lastErr == nil || lastErr.Error() != err.Error() {
				s.logf(ctx, "serial: read: %v", err)
			}
			lastErr = err
			if errors.Is(err, hal.ErrNotImplemented) {
				return
			}
			ctx.BlockOnTick()
			continue
		}
		lastErr = nil
	}
}

func (s *Service) sendData(ctx *kernel.Context, payload []byte) error {
	s.mu.Lock()
	cap := s.rxCap
	s.mu.Unlock()
	if !cap.Valid() {
		return nil
	}
	for len(payload) > 0 {
		chunk := payload
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		res := ctx.SendToCapRetry(cap, uint16(proto.MsgSerialData), chunk, kernel.Capability{}, 100)
		if res != kernel.SendOK {
			return fmt.Errorf("send data: %s", res)
		}
		payload = payload[len(chunk):]
	}
	return nil
}

func (s *Service) logf(ctx *kernel.Context, format string, args ...any) {
	if !s.logCap.Valid() {
		return
	}
	_ = logclient.Logf(ctx, s.logCap, format, args...)
}
