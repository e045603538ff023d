package jsonval

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// Encode serializes a [Value] graph to canonical JSON text.
//
// Encoding dispatches exhaustively on the variant kind and recurses
// depth-first. It fails only for inputs with no JSON representation: a
// Float holding NaN or an infinity ([ErrUnrepresentableNumber]), a zero
// Value ([ErrUnrepresentableValue]), or a graph nesting beyond
// [DefaultMaxDepth] ([ErrDepthExceeded]).
//
// Map members are emitted in insertion order, so Decode-then-Encode is
// byte-stable for any input whose numbers round-trip textually.
func Encode(v Value) ([]byte, error) {
	return appendValue(nil, v, DefaultMaxDepth)
}

// Append encodes v as [Encode] does and appends the result to dst,
// returning the extended slice.
func Append(dst []byte, v Value) ([]byte, error) {
	return appendValue(dst, v, DefaultMaxDepth)
}

// MarshalJSON implements the [json.Marshaler] interface. It is equivalent
// to [Encode], so a Value embeds directly as a field of a larger structure
// serialized with [encoding/json].
func (v Value) MarshalJSON() ([]byte, error) {
	return Encode(v)
}

func appendValue(dst []byte, v Value, depth int) ([]byte, error) {
	if depth <= 0 {
		return nil, ErrDepthExceeded
	}

	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindBool:
		if v.b {
			return append(dst, "true"...), nil
		}

		return append(dst, "false"...), nil
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10), nil
	case KindFloat:
		return appendFloat(dst, v.f)
	case KindString:
		return appendString(dst, v.s), nil
	case KindList:
		dst = append(dst, '[')

		for i, e := range v.l {
			if i > 0 {
				dst = append(dst, ',')
			}

			var err error
			if dst, err = appendValue(dst, e, depth-1); err != nil {
				return nil, err
			}
		}

		return append(dst, ']'), nil
	case KindMap:
		dst = append(dst, '{')

		for i, mem := range v.m {
			if i > 0 {
				dst = append(dst, ',')
			}

			dst = appendString(dst, mem.Key)
			dst = append(dst, ':')

			var err error
			if dst, err = appendValue(dst, mem.Value, depth-1); err != nil {
				return nil, err
			}
		}

		return append(dst, '}'), nil
	}

	return nil, ErrUnrepresentableValue
}

// appendFloat emits the shortest decimal form that re-parses to the same
// 64-bit value, using the fixed/exponent split at 1e-6 and 1e21. When the
// shortest form has no '.' or exponent, ".0" is appended so the value
// re-decodes as a Float under the lexical kind policy instead of an Int.
func appendFloat(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrUnrepresentableNumber, f)
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)

	if !bytes.ContainsAny(dst[start:], ".eE") {
		dst = append(dst, '.', '0')
	}

	return dst, nil
}

const hexDigits = "0123456789abcdef"

// appendString emits a JSON string literal, escaping quotes, backslashes
// and control characters. U+2028 and U+2029 are escaped as well so output
// stays safe to embed in JavaScript contexts, and invalid UTF-8 bytes are
// replaced with U+FFFD.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0

	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}

			dst = append(dst, s[start:i]...)

			switch b {
			case '"':
				dst = append(dst, '\\', '"')
			case '\\':
				dst = append(dst, '\\', '\\')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xF])
			}

			i++
			start = i

			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])

		if r == utf8.RuneError && size == 1 {
			dst = append(dst, s[start:i]...)
			dst = append(dst, "\ufffd"...)
			i += size
			start = i

			continue
		}

		if r == '\u2028' || r == '\u2029' {
			dst = append(dst, s[start:i]...)
			dst = append(dst, '\\', 'u', '2', '0', '2', hexDigits[r&0xF])
			i += size
			start = i

			continue
		}

		i += size
	}

	dst = append(dst, s[start:]...)

	return append(dst, '"')
}
