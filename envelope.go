package jsonval

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidID is returned when a request identifier is not a string, an
// integer, or null.
var ErrInvalidID = errors.New("jsonval: invalid request id")

// ErrIDNotANumber is returned by [ID.Int64] when the identifier does not
// hold an integer.
var ErrIDNotANumber = errors.New("jsonval: id is not a number")

// ID is a request identifier: a string, a 64-bit integer, or null.
//
// A zero ID means the id field was absent, which is distinct from an
// explicit null (the same absent-vs-null split [Value] makes for payloads).
// Use [NewID] or [NewNullID] rather than constructing the struct directly.
type ID struct {
	value   any // string, int64, or nil.
	present bool
}

// NewID returns an ID holding the given string or integer.
func NewID[V int64 | string](v V) ID {
	return ID{value: v, present: true}
}

// NewNullID returns an ID holding an explicit null. It is not zero; see
// [ID.IsZero].
func NewNullID() ID {
	return ID{present: true}
}

// IsZero returns true if the ID was never set. A null ID is not zero.
func (id *ID) IsZero() bool {
	return !id.present
}

// IsNull returns true if the ID holds an explicit null.
func (id *ID) IsNull() bool {
	return id.present && id.value == nil
}

// Value returns the underlying identifier: a string, an int64, or nil for
// null and zero IDs.
func (id *ID) Value() any {
	return id.value
}

// String returns the identifier as a string. The second return is false if
// the ID does not hold a string.
func (id *ID) String() (string, bool) {
	s, ok := id.value.(string)
	return s, ok
}

// Int64 returns the identifier as an int64, or [ErrIDNotANumber] if the ID
// does not hold an integer.
func (id *ID) Int64() (int64, error) {
	if i, ok := id.value.(int64); ok {
		return i, nil
	}

	return 0, ErrIDNotANumber
}

// Equal reports whether two IDs refer to the same request.
//
// Zero IDs are never equal to anything, including each other. Two null IDs
// are equal. String IDs never equal integer IDs.
func (id *ID) Equal(t ID) bool {
	if id.IsZero() || t.IsZero() {
		return false
	}

	if id.IsNull() {
		return t.IsNull()
	}

	return id.value == t.value
}

// UnmarshalJSON implements the [json.Unmarshaler] interface. Strings,
// integer-lexical numbers and null are accepted; fractional numbers,
// booleans and containers fail with [ErrInvalidID].
func (id *ID) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}

	switch v.Kind() {
	case KindNull:
		id.value = nil
	case KindString:
		id.value, _ = v.AsString()
	case KindInt:
		id.value, _ = v.AsInt()
	default:
		return fmt.Errorf("%w: %s", ErrInvalidID, v.Kind())
	}

	id.present = true

	return nil
}

// MarshalJSON implements the [json.Marshaler] interface. Zero and null IDs
// both marshal as JSON null.
func (id ID) MarshalJSON() ([]byte, error) {
	switch v := id.value.(type) {
	case string:
		return appendString(nil, v), nil
	case int64:
		return strconv.AppendInt(nil, v, 10), nil
	default:
		return []byte("null"), nil
	}
}

// Request is the envelope for an operation sent over a channel. The Args
// payload is an opaque [Value]; the envelope never inspects it.
//
// A Request with a zero ID is a notification: no Response is expected.
type Request struct {
	ID      ID     `json:"id,omitzero"`
	Channel string `json:"channel,omitempty"`
	Op      string `json:"op"`
	Args    Value  `json:"args,omitempty,omitzero"`
}

// NewRequest returns a request for op with the given id.
func NewRequest[I int64 | string](id I, op string) *Request {
	return &Request{ID: NewID(id), Op: op}
}

// NewRequestWithArgs returns a request for op with the given id and the
// Args payload set to args.
func NewRequestWithArgs[I int64 | string](id I, op string, args Value) *Request {
	return &Request{ID: NewID(id), Op: op, Args: args}
}

// IsNotification returns true if the request carries no id and therefore
// expects no response.
func (r *Request) IsNotification() bool {
	return r.ID.IsZero()
}

// ResponseWithResult builds the successful [Response] to this request,
// carrying result as its payload.
func (r *Request) ResponseWithResult(result Value) *Response {
	return &Response{ID: r.ID, Channel: r.Channel, OK: true, Timestamp: now(), Result: result}
}

// ResponseWithError builds the failed [Response] to this request, carrying
// errv as its error payload.
func (r *Request) ResponseWithError(errv Value) *Response {
	return &Response{ID: r.ID, Channel: r.Channel, Timestamp: now(), Error: errv}
}

// Response is the envelope answering a [Request].
//
// Result and Error are optional [Value] payloads: a zero Value means the
// field is absent and is omitted on the wire, while [Null] is a present
// payload that marshals as JSON null. The two are never conflated, which is
// what lets an operation legitimately return null.
type Response struct {
	ID        ID      `json:"id"`
	Channel   string  `json:"channel,omitempty"`
	OK        bool    `json:"ok"`
	Timestamp float64 `json:"ts,omitempty"`
	Result    Value   `json:"result,omitempty,omitzero"`
	Error     Value   `json:"error,omitempty,omitzero"`
}

// NewResponseWithResult returns a successful response for the given id,
// stamped with the current time.
func NewResponseWithResult[I int64 | string](id I, result Value) *Response {
	return &Response{ID: NewID(id), OK: true, Timestamp: now(), Result: result}
}

// NewResponseWithError returns a failed response for the given id, stamped
// with the current time.
func NewResponseWithError[I int64 | string](id I, errv Value) *Response {
	return &Response{ID: NewID(id), Timestamp: now(), Error: errv}
}

// IsError returns true if the response carries an error payload.
func (r *Response) IsError() bool {
	return !r.Error.IsZero()
}

// now returns the current wall clock as fractional seconds since the epoch,
// the timestamp format the envelope uses on the wire.
func now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
