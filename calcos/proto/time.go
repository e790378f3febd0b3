package proto

import "encoding/binary"

// SleepPayload encodes a MsgSleep request payload.
//
// Layout (little-endian):
//   - u32: requestID
//   - u32: dt ticks
func SleepPayload(requestID uint32, dt uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	binary.LittleEndian.PutUint32(buf[4:8], dt)
	return buf
}

// DecodeSleepPayload decodes a SleepPayload.
func DecodeSleepPayload(payload []byte) (requestID uint32, dt uint32, ok bool) {
	if len(payload) < 8 {
		return 0, 0, false
	}
	requestID = binary.LittleEndian.Uint32(payload[0:4])
	dt = binary.LittleEndian.Uint32(payload[4:8])
	return requestID, dt, true
}

// WakePayload encodes a MsgWake response payload.
//
// Layout (little-endian):
//   - u32: requestID
func WakePayload(requestID uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	return buf
}

// DecodeWakePayload decodes a WakePayload.
func DecodeWakePayload(payload []byte) (requestID uint32, ok bool) {
	if len(payload) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(payload[0:4]), true
}

// TimeNowPayload encodes a MsgTimeNow request. The reply capability travels in Message.Cap.
//
// Layout (little-endian):
//   - u32: requestID
func TimeNowPayload(requestID uint32) []byte {
	return WakePayload(requestID)
}

// DecodeTimeNowPayload decodes a TimeNowPayload.
func DecodeTimeNowPayload(payload []byte) (requestID uint32, ok bool) {
	return DecodeWakePayload(payload)
}

// WallClock is the broken-down local time carried by MsgTimeNowResp.
type WallClock struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

// TimeNowRespPayload encodes a MsgTimeNowResp payload.
//
// Layout (little-endian):
//   - u32: requestID
//   - u8: hour, u8: minute, u8: second
func TimeNowRespPayload(requestID uint32, wc WallClock) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	buf[4] = wc.Hour
	buf[5] = wc.Minute
	buf[6] = wc.Second
	return buf
}

// DecodeTimeNowRespPayload decodes a TimeNowRespPayload.
func DecodeTimeNowRespPayload(payload []byte) (requestID uint32, wc WallClock, ok bool) {
	if len(payload) < 7 {
		return 0, WallClock{}, false
	}
	requestID = binary.LittleEndian.Uint32(payload[0:4])
	wc = WallClock{Hour: payload[4], Minute: payload[5], Second: payload[6]}
	return requestID, wc, true
}
