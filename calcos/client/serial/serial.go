package serial

import (
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

// Subscribe registers rxCap as the receiver of MsgSerialData messages.
func Subscribe(ctx *kernel.Context, serialCap, rxCap kernel.Capability) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapRetry(serialCap, uint16(proto.MsgSerialSubscribe), nil, rxCap, 100)
}

// Write queues bytes for the serial port, splitting them into message-sized chunks.
func Write(ctx *kernel.Context, serialCap kernel.Capability, payload []byte) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	for len(payload) > 0 {
		chunk := payload
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		if res := ctx.SendToCapRetry(serialCap, uint16(proto.MsgSerialWrite), chunk, kernel.Capability{}, 100); res != kernel.SendOK {
			return res
		}
		payload = payload[len(chunk):]
	}
	return kernel.SendOK
}
