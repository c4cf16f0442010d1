package broker

import "fmt"

// ConnException is a hard protocol error: the whole connection is
// unrecoverable (spec.md 7). ClassID/MethodID identify where the fault was
// detected, per the wire Connection.Close fields; both are zero when the
// fault isn't attributable to a specific method (e.g. a framing error
// raised before any method was even parsed).
type ConnException struct {
	ReplyCode uint16
	ReplyText string
	ClassID   uint16
	MethodID  uint16
}

func (e *ConnException) Error() string {
	return fmt.Sprintf("connection exception %d: %s", e.ReplyCode, e.ReplyText)
}

func NewConnException(code uint16, text string, classID, methodID uint16) *ConnException {
	return &ConnException{ReplyCode: code, ReplyText: text, ClassID: classID, MethodID: methodID}
}

// Reply-code constants for the connection-exception table (spec.md 7).
const (
	ReplyFrameError      uint16 = 501
	ReplySyntaxError     uint16 = 502
	ReplyCommandInvalid  uint16 = 503
	ReplyChannelError    uint16 = 504
	ReplyUnexpectedFrame uint16 = 505
	ReplyResourceError   uint16 = 506
	ReplyNotAllowed      uint16 = 530
	ReplyNotImplemented  uint16 = 540
	ReplyInternalError   uint16 = 541
)

// ChanException is a soft protocol error: only the offending channel is
// closed, the connection survives (spec.md 7).
type ChanException struct {
	ReplyCode uint16
	ReplyText string
	ClassID   uint16
	MethodID  uint16
}

func (e *ChanException) Error() string {
	return fmt.Sprintf("channel exception %d: %s", e.ReplyCode, e.ReplyText)
}

func NewChanException(code uint16, text string, classID, methodID uint16) *ChanException {
	return &ChanException{ReplyCode: code, ReplyText: text, ClassID: classID, MethodID: methodID}
}

// Reply-code constants for the channel-exception table (spec.md 7).
const (
	ReplyContentTooLarge    uint16 = 311
	ReplyNoConsumers        uint16 = 313
	ReplyAccessRefused      uint16 = 403
	ReplyNotFound           uint16 = 404
	ReplyResourceLocked     uint16 = 405
	ReplyPreconditionFailed uint16 = 406
)

// notImplemented turns a protocol gap (spec.md 9, "Source gaps") into a
// connection exception: every method this broker declines to implement is
// treated as connection-fatal rather than guessing at partial semantics.
func notImplemented(classID, methodID uint16, name string) *ConnException {
	return NewConnException(ReplyNotImplemented, name+" not implemented", classID, methodID)
}
