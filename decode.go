package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Decode parses a single JSON value from data and returns it as a [Value],
// applying the kind-inference policy described in the package documentation.
//
// Decode is a pure function: it holds no state between calls and never
// returns a partial Value alongside an error.
//
// Failure modes:
//   - input that is not exactly one well-formed JSON value (including
//     trailing non-whitespace bytes) fails with [ErrMalformedInput];
//   - an object repeating a key fails with [ErrDuplicateKey]: duplicate
//     keys are rejected outright rather than resolved last-write-wins, so
//     decoding never silently drops data;
//   - nesting beyond [DefaultMaxDepth] fails with [ErrDepthExceeded].
//
// Object member order is preserved in the resulting Map, which makes
// encode(Decode(t)) byte-stable, but carries no semantic weight (see
// [Value.Equal]).
func Decode(data []byte) (Value, error) {
	return decodeBytes(data, DefaultMaxDepth)
}

func decodeBytes(data []byte, maxDepth int) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeNext(dec, maxDepth)
	if err != nil {
		return Value{}, err
	}

	// Exactly one value per input.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: trailing data after value", ErrMalformedInput)
	}

	return v, nil
}

// decodeNext consumes one complete JSON value from the token stream. depth
// counts down; containers recurse with depth-1.
func decodeNext(dec *json.Decoder, depth int) (Value, error) {
	if depth <= 0 {
		return Value{}, ErrDepthExceeded
	}

	tok, err := dec.Token()
	if err != nil {
		return Value{}, malformed(err)
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return decodeNumber(t)
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeList(dec, depth)
		case '{':
			return decodeMap(dec, depth)
		}
	}

	return Value{}, fmt.Errorf("%w: unexpected token %v", ErrMalformedInput, tok)
}

// decodeNumber applies the lexical numeric policy: no '.' and no exponent
// marker and within int64 range means Int, anything else means Float.
func decodeNumber(n json.Number) (Value, error) {
	s := n.String()

	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
		// Integer lexical form but outside int64; falls through to Float.
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, malformed(err)
	}

	return Float(f), nil
}

func decodeList(dec *json.Decoder, depth int) (Value, error) {
	elems := []Value{}

	for dec.More() {
		e, err := decodeNext(dec, depth-1)
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, e)
	}

	// Closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, malformed(err)
	}

	return Value{kind: KindList, l: elems}, nil
}

func decodeMap(dec *json.Decoder, depth int) (Value, error) {
	members := []Member{}
	seen := make(map[string]struct{})

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, malformed(err)
		}

		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: object key is not a string", ErrMalformedInput)
		}

		if _, dup := seen[key]; dup {
			return Value{}, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}

		seen[key] = struct{}{}

		e, err := decodeNext(dec, depth-1)
		if err != nil {
			return Value{}, err
		}

		members = append(members, Member{Key: key, Value: e})
	}

	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, malformed(err)
	}

	return Value{kind: KindMap, m: members}, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w (%w)", ErrMalformedInput, err)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface, so a Value can
// sit inside a larger structure and be populated by [encoding/json]. The
// incoming data is decoded with [Decode] and all of its policies apply.
//
// JSON `null` decodes to [Null], not to the zero Value: a field that was
// present and null stays distinguishable from a field that was absent.
func (v *Value) UnmarshalJSON(data []byte) error {
	if HintType(data) == HintEmpty {
		return fmt.Errorf("%w: empty input", ErrMalformedInput)
	}

	dv, err := Decode(data)
	if err != nil {
		return err
	}

	*v = dv

	return nil
}
