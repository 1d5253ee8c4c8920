// Package flatmap flattens tree-shaped values into a single map from a
// constructed key to each scalar leaf.
//
// It is meant for "one row, many scalar columns" views of structured records:
// log shippers, tabular export, and field naming conventions of downstream
// indexers. The central entry point is [Flatten]:
//
//	m, err := flatmap.Flatten("_", "_", record)
//
// For a record {a: "test", b: 0.5, c: [5, 9], d: {a: "subtest", b: 695217}}
// the result holds _a, _b, _c_0, _c_1, _d_a and _d_b.
//
// # Value Model
//
// Sources are first converted into a [Value] tree by [ToValue]. A Value is
// one of the scalar kinds ([Bool], [U8] .. [U64], [I8] .. [I64], [F32],
// [F64], [Char], [String], [Bytes], [Unit]) or a composite: [Seq] or [Map].
// Maps iterate their entries in key order, so flattening is deterministic.
// Types can take over their own conversion by implementing [Valuer].
//
// Records that arrive already serialized are read with a [Decoder] for JSON,
// YAML or msgpack streams, or with [FromJSON], [FromYAML] and [FromMsgpack].
//
// # Keys
//
// A [Flattener] joins path segments with its separator. The prefix is
// applied to the first segment only. Sequence elements are keyed by their
// decimal index. Map keys must be strings or characters; any other key makes
// flattening fail with [ErrInvalidKeyType] once that map is reached.
//
// With [SuffixOn], every leaf key also gets a token naming its scalar kind:
//
//   - bool → "bool"
//   - unsigned integers → "double"
//   - signed integers → "long"
//   - floating point → "float"
//
// so "_d_b" becomes "_d_b_double". Other kinds get no suffix.
//
// When two paths produce the same key, the one processed later wins.
//
// # Rendering
//
// A [FlatMap] is one row. [Write] renders rows as JSON, JSONL, YAML, CSV,
// TSV, ENV, logfmt, Table, Markdown, HTML or a [GoTemplate]; tabular formats
// use the union of all row keys as columns. [WriteIter] streams rows where
// the format allows it.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrConversion]: a source could not be turned into a Value
//   - [ErrInvalidKeyType]: a map key is neither a string nor a character
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrUnsupportedEncoding]: unknown input encoding
//   - [ErrUnsupportedSuffixMode]: unknown suffix mode
//   - [ErrInvalidTemplate]: invalid go-template syntax
//
// # Logging
//
// The package logs through [go.uber.org/zap]. It is silent until [SetLogger]
// installs a logger; [WithLogger] sets one per Flattener.
package flatmap
