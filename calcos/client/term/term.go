package term

import (
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

// Write sends a best-effort payload to the terminal service.
func Write(ctx *kernel.Context, termCap kernel.Capability, payload []byte) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	if len(payload) > kernel.MaxMessageBytes {
		payload = payload[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(termCap, uint16(proto.MsgTermWrite), payload, kernel.Capability{})
}

// WriteLine sends s followed by CRLF.
func WriteLine(ctx *kernel.Context, termCap kernel.Capability, s string) kernel.SendResult {
	return Write(ctx, termCap, append([]byte(s), '\r', '\n'))
}
