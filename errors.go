package jsonval

import "errors"

var (
	// ErrMalformedInput is returned by [Decode] when the input is not a
	// single well-formed JSON value. No partial Value is ever returned
	// alongside it.
	ErrMalformedInput = errors.New("jsonval: malformed JSON input")

	// ErrDuplicateKey is returned by [Decode] when a JSON object repeats a
	// key. Duplicate keys are rejected rather than resolved; see [Decode].
	ErrDuplicateKey = errors.New("jsonval: duplicate object key")

	// ErrUnrepresentableNumber is returned by [Encode] when a Float holds
	// NaN or an infinity, which have no JSON representation.
	ErrUnrepresentableNumber = errors.New("jsonval: number has no JSON representation")

	// ErrUnrepresentableValue is returned by [Encode] when asked to encode
	// a zero (absent) [Value].
	ErrUnrepresentableValue = errors.New("jsonval: zero Value has no JSON representation")

	// ErrDepthExceeded is returned when input text or a value graph nests
	// beyond the configured depth bound.
	ErrDepthExceeded = errors.New("jsonval: nesting depth exceeds limit")

	// ErrTypeMismatch is returned by the As* accessors when the requested
	// native type does not match the held variant.
	ErrTypeMismatch = errors.New("jsonval: type mismatch")

	// ErrValueTooLarge is returned by [Decoder.Decode] when a single JSON
	// value exceeds the limit configured with [Decoder.SetLimit].
	ErrValueTooLarge = errors.New("jsonval: JSON value larger than configured read limit")
)
