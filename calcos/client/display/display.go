// Package display sends draw requests to a display sink service.
//
// A sink is any service that understands MsgDisplayText, MsgDisplayForm and
// MsgDisplayDigits: the Genie link, the framebuffer panel or the live console.
package display

import (
	"geniecalc/calcos/calc"
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

const sendRetryTicks = 20

// Text sets the contents of a text box on the calculator form.
func Text(ctx *kernel.Context, sinkCap kernel.Capability, box uint8, text string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	payload := proto.DisplayTextPayload(box, text)
	if len(payload) > kernel.MaxMessageBytes {
		payload = payload[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapRetry(sinkCap, uint16(proto.MsgDisplayText), payload, kernel.Capability{}, sendRetryTicks)
}

// Show draws a calculator update: the value box, then the status box.
func Show(ctx *kernel.Context, sinkCap kernel.Capability, upd calc.DisplayUpdate) kernel.SendResult {
	if res := Text(ctx, sinkCap, proto.BoxValue, upd.Text); res != kernel.SendOK {
		return res
	}
	return Text(ctx, sinkCap, proto.BoxStatus, upd.Status)
}

// Form switches the panel to another form.
func Form(ctx *kernel.Context, sinkCap kernel.Capability, f proto.Form) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapRetry(sinkCap, uint16(proto.MsgDisplayForm), proto.FormPayload(f), kernel.Capability{}, sendRetryTicks)
}

// Digits sets an LED digits object on the clock form.
//
// Clock writes are periodic, so a full queue drops the update instead of waiting.
func Digits(ctx *kernel.Context, sinkCap kernel.Capability, index uint8, value uint16) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(sinkCap, uint16(proto.MsgDisplayDigits), proto.DisplayDigitsPayload(index, value), kernel.Capability{})
}
