// Package calculator feeds key and form events to the calculator task.
package calculator

import (
	"geniecalc/calcos/kernel"
	"geniecalc/calcos/proto"
)

const sendRetryTicks = 100

// Press delivers one key code. Codes outside the calculator alphabet are delivered
// too; the calculator reports them as unrecognized.
func Press(ctx *kernel.Context, calcCap kernel.Capability, code uint16) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapRetry(calcCap, uint16(proto.MsgCalcKey), proto.CalcKeyPayload(code), kernel.Capability{}, sendRetryTicks)
}

// SelectForm asks the calculator to bring a form to the front.
func SelectForm(ctx *kernel.Context, calcCap kernel.Capability, f proto.Form) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapRetry(calcCap, uint16(proto.MsgFormSelect), proto.FormPayload(f), kernel.Capability{}, sendRetryTicks)
}
