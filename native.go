package jsonval

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// FromGo wraps a native Go value in a [Value].
//
// Supported inputs: nil, bool, all signed and unsigned integer widths,
// float32/float64, string, [json.Number] (classified by the same lexical
// policy as [Decode]), []any, map[string]any, []Value, []Member, and Value
// itself. Anything else fails with [ErrUnrepresentableValue].
//
// A uint64 above the int64 range becomes a Float, matching the decoder's
// treatment of numbers outside 64-bit signed range. Keys of a
// map[string]any are sorted, since Go map iteration order would otherwise
// make the resulting Map (and its encoding) non-deterministic.
func FromGo(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		if t.IsZero() {
			return Value{}, ErrUnrepresentableValue
		}

		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return fromUint(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return decodeNumber(t)
	case []Value:
		return List(t...), nil
	case []Member:
		return Map(t...), nil
	case []any:
		elems := make([]Value, len(t))

		for i, e := range t {
			ev, err := FromGo(e)
			if err != nil {
				return Value{}, err
			}

			elems[i] = ev
		}

		return Value{kind: KindList, l: elems}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		members := make([]Member, len(keys))

		for i, k := range keys {
			ev, err := FromGo(t[k])
			if err != nil {
				return Value{}, err
			}

			members[i] = Member{Key: k, Value: ev}
		}

		return Value{kind: KindMap, m: members}, nil
	}

	return Value{}, fmt.Errorf("%w: cannot wrap %T", ErrUnrepresentableValue, v)
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}

	return Int(int64(u))
}

// Interface unwraps the Value into native Go types: nil, bool, int64,
// float64, string, []any, or map[string]any.
//
// The inverse of [FromGo] up to container types; note a map[string]any does
// not preserve member insertion order. A zero Value unwraps to nil, same as
// Null.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.l))
		for i, e := range v.l {
			out[i] = e.Interface()
		}

		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for _, mem := range v.m {
			out[mem.Key] = mem.Value.Interface()
		}

		return out
	default:
		return nil
	}
}
