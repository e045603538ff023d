package jsonval

import (
	"fmt"
)

// Kind identifies which variant a [Value] currently holds.
//
// The zero Kind, [KindInvalid], is held only by the zero Value and means
// "absent" rather than any JSON value. [KindNull] is the JSON `null` value
// and is distinct from absence; the distinction is what lets a Value embed
// as an optional field without conflating "present and null" with "not
// present" (see [Response]).
type Kind int

const (
	KindInvalid Kind = iota // Zero Value, no JSON value held.
	KindNull                // JSON null.
	KindBool                // JSON true or false.
	KindInt                 // JSON number with integer lexical form, within int64.
	KindFloat               // Any other JSON number.
	KindString              // JSON string.
	KindList                // JSON array.
	KindMap                 // JSON object.
)

// String returns the lower-case name of the kind, for use in error text.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Member is a single key/value pair of a Map [Value].
type Member struct {
	Key   string
	Value Value
}

// Field is a convenience constructor for a [Member].
//
// Example:
//
//	m := jsonval.Map(
//		jsonval.Field("name", jsonval.String("alice")),
//		jsonval.Field("age", jsonval.Int(30)),
//	)
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Value is a type-erased container holding any legal JSON value as one of a
// closed set of variants (see [Kind]).
//
// A Value is immutable once constructed: constructors copy their slice
// arguments, container accessors return copies, and no method mutates the
// receiver. Values may therefore be shared and read concurrently without
// locking. Because constructors copy and fields are unexported, a Value
// graph is always finite and acyclic.
//
// The zero Value holds no JSON value at all ([Value.IsZero] is true). It is
// not encodable and is distinct from [Null], mirroring the absent-vs-null
// split JSON envelopes rely on.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	l    []Value
	m    []Member
}

// Null returns the JSON `null` Value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a Value holding the given boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns a Value holding the given 64-bit integer.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a Value holding the given 64-bit float.
//
// NaN and infinities are representable in the container but not in JSON
// text; encoding them fails with [ErrUnrepresentableNumber].
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// String returns a Value holding the given string.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// List returns a Value holding an ordered sequence of Values.
// The argument slice is copied.
func List(elems ...Value) Value {
	l := make([]Value, len(elems))
	copy(l, elems)

	return Value{kind: KindList, l: l}
}

// Map returns a Value holding string-keyed Values in insertion order.
//
// Keys are unique: if members repeats a key, the last value wins and the
// member keeps the position of its first occurrence.
func Map(members ...Member) Value {
	m := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))

	for _, mem := range members {
		if at, ok := index[mem.Key]; ok {
			m[at].Value = mem.Value
			continue
		}

		index[mem.Key] = len(m)
		m = append(m, mem)
	}

	return Value{kind: KindMap, m: m}
}

// Kind returns the variant currently held.
func (v Value) Kind() Kind {
	return v.kind
}

// IsZero returns true if the Value is the zero value, holding no JSON value.
// This is distinct from holding JSON null; see [Value.IsNull].
func (v Value) IsZero() bool {
	return v.kind == KindInvalid
}

// IsNull returns true if the Value holds JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the held boolean, or [ErrTypeMismatch] if the Value does
// not hold one.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, typeMismatch(v.kind, KindBool)
	}

	return v.b, nil
}

// AsInt returns the held integer, or [ErrTypeMismatch] if the Value does
// not hold one. A Float is never converted, even when integral.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, typeMismatch(v.kind, KindInt)
	}

	return v.i, nil
}

// AsFloat returns the held float, or [ErrTypeMismatch] if the Value does
// not hold one. An Int is never converted.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, typeMismatch(v.kind, KindFloat)
	}

	return v.f, nil
}

// AsString returns the held string, or [ErrTypeMismatch] if the Value does
// not hold one.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", typeMismatch(v.kind, KindString)
	}

	return v.s, nil
}

// AsList returns a copy of the held element sequence, or [ErrTypeMismatch]
// if the Value is not a List.
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, typeMismatch(v.kind, KindList)
	}

	l := make([]Value, len(v.l))
	copy(l, v.l)

	return l, nil
}

// AsMap returns a copy of the held members in insertion order, or
// [ErrTypeMismatch] if the Value is not a Map.
func (v Value) AsMap() ([]Member, error) {
	if v.kind != KindMap {
		return nil, typeMismatch(v.kind, KindMap)
	}

	m := make([]Member, len(v.m))
	copy(m, v.m)

	return m, nil
}

// Len returns the element count of a List or the member count of a Map, and
// 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.l)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Index returns the i-th element of a List. The second return is false if
// the Value is not a List or i is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.l) {
		return Value{}, false
	}

	return v.l[i], true
}

// Get returns the Value held under key in a Map. The second return is false
// if the Value is not a Map or the key is not present.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}

	for _, mem := range v.m {
		if mem.Key == key {
			return mem.Value, true
		}
	}

	return Value{}, false
}

// Keys returns a copy of a Map's keys in insertion order, or nil if the
// Value is not a Map.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}

	keys := make([]string, len(v.m))
	for i, mem := range v.m {
		keys[i] = mem.Key
	}

	return keys
}

// Equal reports whether two Values hold the same variant with recursively
// equal payloads.
//
// Float comparison follows IEEE-754 equality, so a Value holding NaN is not
// equal to anything, itself included. Int and Float never compare equal even
// when numerically identical. List equality is ordered; Map equality
// compares key sets and their values, ignoring insertion order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindInvalid, KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.l) != len(o.l) {
			return false
		}

		for i := range v.l {
			if !v.l[i].Equal(o.l[i]) {
				return false
			}
		}

		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}

		// Keys are unique on both sides, so equal lengths plus per-key
		// lookup is a full set comparison.
		for _, mem := range v.m {
			w, ok := o.Get(mem.Key)
			if !ok || !mem.Value.Equal(w) {
				return false
			}
		}

		return true
	}

	return false
}

func typeMismatch(have, want Kind) error {
	return fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, have, want)
}
