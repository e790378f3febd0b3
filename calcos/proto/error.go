package proto

import (
	"encoding/binary"
	"fmt"
)

// ErrorPayload encodes a generic error response payload.
//
// Layout (little-endian):
//   - u16: code
//   - u16: ref kind (the request kind that failed)
//   - u32: request ID (0 when the request could not be decoded)
func ErrorPayload(code ErrCode, ref Kind, requestID uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(code))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(ref))
	binary.LittleEndian.PutUint32(buf[4:8], requestID)
	return buf
}

// RemoteError is a decoded MsgError reply.
type RemoteError struct {
	Code      ErrCode
	Ref       Kind
	RequestID uint32
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Ref, e.Code)
}

// DecodeErrorPayload decodes an ErrorPayload.
func DecodeErrorPayload(payload []byte) (*RemoteError, bool) {
	if len(payload) < 8 {
		return nil, false
	}
	return &RemoteError{
		Code:      ErrCode(binary.LittleEndian.Uint16(payload[0:2])),
		Ref:       Kind(binary.LittleEndian.Uint16(payload[2:4])),
		RequestID: binary.LittleEndian.Uint32(payload[4:8]),
	}, true
}
