package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgSleep
	MsgWake
	MsgError
	MsgTimeNow
	MsgTimeNowResp
	MsgTermWrite
	MsgSerialSubscribe
	MsgSerialWrite
	MsgSerialData
	MsgCalcKey
	MsgFormSelect
	MsgDisplayText
	MsgDisplayForm
	MsgDisplayDigits
)

// ErrCode is a generic error category for MsgError responses.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrNotFound
	ErrBusy
	ErrOverflow
	ErrTooLarge
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrBadMessage:
		return "bad_message"
	case ErrNotFound:
		return "not_found"
	case ErrBusy:
		return "busy"
	case ErrOverflow:
		return "overflow"
	case ErrTooLarge:
		return "too_large"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgSleep:
		return "sleep"
	case MsgWake:
		return "wake"
	case MsgError:
		return "error"
	case MsgTimeNow:
		return "time_now"
	case MsgTimeNowResp:
		return "time_now_resp"
	case MsgTermWrite:
		return "term_write"
	case MsgSerialSubscribe:
		return "serial_subscribe"
	case MsgSerialWrite:
		return "serial_write"
	case MsgSerialData:
		return "serial_data"
	case MsgCalcKey:
		return "calc_key"
	case MsgFormSelect:
		return "form_select"
	case MsgDisplayText:
		return "display_text"
	case MsgDisplayForm:
		return "display_form"
	case MsgDisplayDigits:
		return "display_digits"
	default:
		return "unknown"
	}
}
