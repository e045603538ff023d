package jsonval

import (
	"bytes"
)

// Hint is a quick classification of the likely top-level JSON type of a raw
// payload, based solely on its first non-whitespace byte.
//
// It lets envelope code peek at an opaque payload (is this an object? an
// error string?) without paying for a full decode. A number payload hints as
// [HintNumber] only; whether it decodes as Int or Float depends on its full
// lexical form and is the decoder's decision.
//
// Note: this is only a hint and does not guarantee the payload is valid
// JSON of that type.
type Hint int

const (
	HintUnknown Hint = iota // First byte matches no JSON value start.
	HintNull                // Likely null (starts with 'n').
	HintBool                // Likely a boolean (starts with 't' or 'f').
	HintNumber              // Likely a number (starts with '-' or a digit).
	HintString              // Likely a string (starts with '"').
	HintArray               // Likely an array (starts with '[').
	HintObject              // Likely an object (starts with '{').

	// HintEmpty is returned when the payload, after trimming whitespace,
	// has zero length.
	HintEmpty
)

// HintType examines the first non-whitespace byte of data and returns a
// [Hint] for the JSON type it likely holds.
func HintType(data []byte) Hint {
	data = bytes.TrimSpace(data)

	if len(data) == 0 {
		return HintEmpty
	}

	switch data[0] {
	case 'n':
		return HintNull
	case 't', 'f':
		return HintBool
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return HintNumber
	case '"':
		return HintString
	case '[':
		return HintArray
	case '{':
		return HintObject
	}

	return HintUnknown
}
