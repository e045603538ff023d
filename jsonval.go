// Package jsonval provides a kind-preserving container for arbitrary JSON
// values.
//
// # Overview
//
// A [Value] holds any legal JSON value (null, boolean, integer, float,
// string, array, object) as a closed set of variants. Unlike decoding into
// `any` with [encoding/json], a Value never conflates the original scalar
// kind: `42` decodes as an Int, `42.0` decodes as a Float, and nested
// heterogeneous structure is preserved exactly. Every encode and decode site
// dispatches exhaustively over the variant set, so an unhandled kind is a
// compile-time hole rather than a silent fallthrough.
//
// # Kind inference
//
// JSON text carries a single generic number token, so the decoder applies an
// explicit lexical policy at each token:
//
//   - null -> Null
//   - true/false -> Bool
//   - number with no '.' and no exponent, within int64 range -> Int
//   - any other number -> Float
//   - string -> String
//   - array -> List (elements decoded recursively)
//   - object -> Map (values decoded recursively, insertion order kept)
//
// The lexical form drives the decision, not the mathematical value: `1e0`
// and `1.0` are Floats even though they are integral.
//
// # Basic Usage
//
//	v, err := jsonval.Decode([]byte(`{"echo":"hi","count":3}`))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	count, _ := v.Get("count")
//	n, err := count.AsInt() // n == 3
//
//	out, err := jsonval.Encode(jsonval.Map(
//		jsonval.Field("ok", jsonval.Bool(true)),
//		jsonval.Field("ratio", jsonval.Float(0.5)),
//	))
//	// out == []byte(`{"ok":true,"ratio":0.5}`)
//
// Values are immutable once constructed and may be shared freely across
// goroutines. [Decode] and [Encode] are pure, synchronous functions; the
// stream-oriented [Decoder] and [Encoder] add context cancellation, read
// limits and idle timeouts for callers that frame values over a connection.
//
// For embedding a Value as an optional payload inside a larger structure,
// Value implements [json.Marshaler] and [json.Unmarshaler], and its zero
// value means "absent" (distinct from an explicit JSON null). See [Request]
// and [Response] for the envelope types built on this contract.
package jsonval

// DefaultMaxDepth is the nesting depth bound applied by [Decode], [Encode]
// and [Value.MarshalJSON]. Inputs or value graphs nesting deeper fail with
// [ErrDepthExceeded] instead of exhausting the call stack.
const DefaultMaxDepth = 1000
