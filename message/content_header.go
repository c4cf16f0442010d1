package message

// ContentHeader is the per-message property block that follows a
// content-bearing method (spec.md 4.2 "Content-header properties"). Only
// the Basic class is implemented; class_id is always 60 (Basic) for this
// broker, weight is always 0 per the protocol.
type ContentHeader struct {
	ClassID  uint16
	Weight   uint16
	BodySize uint64

	ContentType     *string
	ContentEncoding *string
	Headers         Table
	DeliveryMode    *uint8
	Priority        *uint8
	CorrelationID   *string
	ReplyTo         *string
	Expiration      *string
	MessageID       *string
	Timestamp       *uint64
	Type            *string
	UserID          *string
	AppID           *string
	Reserved        *string
}

// propertyBit maps each Basic-class property to its bit position within the
// flag word: bit 15-k for the k-th property, per spec.md 4.2.
var propertyBit = map[string]uint{
	"content-type":     15,
	"content-encoding": 14,
	"headers":          13,
	"delivery-mode":    12,
	"priority":         11,
	"correlation-id":   10,
	"reply-to":         9,
	"expiration":       8,
	"message-id":       7,
	"timestamp":        6,
	"type":             5,
	"user-id":          4,
	"app-id":           3,
	"reserved":         2,
}

// ParseContentHeader decodes a Header-frame payload. The class_id must equal
// the pending method's class id (checked by the caller, transport's
// handleHeaderFrame).
func ParseContentHeader(payload []byte) (*ContentHeader, error) {
	r := NewReader(payload)
	classID, err := r.ReadShort()
	if err != nil {
		return nil, WrapSyntax(err, "content header class id")
	}
	weight, err := r.ReadShort()
	if err != nil {
		return nil, WrapSyntax(err, "content header weight")
	}
	bodySize, err := r.ReadLongLong()
	if err != nil {
		return nil, WrapSyntax(err, "content header body size")
	}
	flags, err := r.ReadShort()
	if err != nil {
		return nil, WrapSyntax(err, "content header flags")
	}
	// Bit 0 signals an extended flag word; this broker documents but does
	// not decode extensions (spec.md 9, "Content-header flag word size") —
	// only the Basic class is ever parsed here, and Basic never needs one.
	if flags&1 != 0 {
		if _, err := r.ReadShort(); err != nil {
			return nil, WrapSyntax(err, "content header extended flags")
		}
	}

	h := &ContentHeader{ClassID: classID, Weight: weight, BodySize: bodySize}
	has := func(name string) bool { return flags&(1<<propertyBit[name]) != 0 }

	if has("content-type") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "content-type")
		}
		h.ContentType = &v
	}
	if has("content-encoding") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "content-encoding")
		}
		h.ContentEncoding = &v
	}
	if has("headers") {
		v, err := r.ReadTable()
		if err != nil {
			return nil, WrapSyntax(err, "headers")
		}
		h.Headers = v
	}
	if has("delivery-mode") {
		v, err := r.ReadOctet()
		if err != nil {
			return nil, WrapSyntax(err, "delivery-mode")
		}
		h.DeliveryMode = &v
	}
	if has("priority") {
		v, err := r.ReadOctet()
		if err != nil {
			return nil, WrapSyntax(err, "priority")
		}
		h.Priority = &v
	}
	if has("correlation-id") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "correlation-id")
		}
		h.CorrelationID = &v
	}
	if has("reply-to") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "reply-to")
		}
		h.ReplyTo = &v
	}
	if has("expiration") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "expiration")
		}
		h.Expiration = &v
	}
	if has("message-id") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "message-id")
		}
		h.MessageID = &v
	}
	if has("timestamp") {
		v, err := r.ReadTimestamp()
		if err != nil {
			return nil, WrapSyntax(err, "timestamp")
		}
		h.Timestamp = &v
	}
	if has("type") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "type")
		}
		h.Type = &v
	}
	if has("user-id") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "user-id")
		}
		h.UserID = &v
	}
	if has("app-id") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "app-id")
		}
		h.AppID = &v
	}
	if has("reserved") {
		v, err := r.ReadShortstr()
		if err != nil {
			return nil, WrapSyntax(err, "reserved")
		}
		h.Reserved = &v
	}
	return h, nil
}

// WriteContentHeader serializes a content header, emitting each present
// property in the fixed order defined by the protocol.
func WriteContentHeader(h *ContentHeader) []byte {
	w := NewWriter()
	w.WriteShort(h.ClassID)
	w.WriteShort(h.Weight)
	w.WriteLongLong(h.BodySize)

	var flags uint16
	set := func(name string) { flags |= 1 << propertyBit[name] }
	if h.ContentType != nil {
		set("content-type")
	}
	if h.ContentEncoding != nil {
		set("content-encoding")
	}
	if h.Headers != nil {
		set("headers")
	}
	if h.DeliveryMode != nil {
		set("delivery-mode")
	}
	if h.Priority != nil {
		set("priority")
	}
	if h.CorrelationID != nil {
		set("correlation-id")
	}
	if h.ReplyTo != nil {
		set("reply-to")
	}
	if h.Expiration != nil {
		set("expiration")
	}
	if h.MessageID != nil {
		set("message-id")
	}
	if h.Timestamp != nil {
		set("timestamp")
	}
	if h.Type != nil {
		set("type")
	}
	if h.UserID != nil {
		set("user-id")
	}
	if h.AppID != nil {
		set("app-id")
	}
	if h.Reserved != nil {
		set("reserved")
	}
	w.WriteShort(flags)

	if h.ContentType != nil {
		w.WriteShortstr(*h.ContentType)
	}
	if h.ContentEncoding != nil {
		w.WriteShortstr(*h.ContentEncoding)
	}
	if h.Headers != nil {
		w.WriteTable(h.Headers)
	}
	if h.DeliveryMode != nil {
		w.WriteOctet(*h.DeliveryMode)
	}
	if h.Priority != nil {
		w.WriteOctet(*h.Priority)
	}
	if h.CorrelationID != nil {
		w.WriteShortstr(*h.CorrelationID)
	}
	if h.ReplyTo != nil {
		w.WriteShortstr(*h.ReplyTo)
	}
	if h.Expiration != nil {
		w.WriteShortstr(*h.Expiration)
	}
	if h.MessageID != nil {
		w.WriteShortstr(*h.MessageID)
	}
	if h.Timestamp != nil {
		w.WriteTimestamp(*h.Timestamp)
	}
	if h.Type != nil {
		w.WriteShortstr(*h.Type)
	}
	if h.UserID != nil {
		w.WriteShortstr(*h.UserID)
	}
	if h.AppID != nil {
		w.WriteShortstr(*h.AppID)
	}
	if h.Reserved != nil {
		w.WriteShortstr(*h.Reserved)
	}
	return w.Bytes()
}
