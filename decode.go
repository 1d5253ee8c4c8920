package flatmap

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Encoding names the wire format of input records.
type Encoding string

const (
	EncodingJSON    Encoding = "json"
	EncodingYAML    Encoding = "yaml"
	EncodingMsgpack Encoding = "msgpack"
)

var encodings = []Encoding{EncodingJSON, EncodingYAML, EncodingMsgpack}

// String returns the encoding name.
func (e Encoding) String() string { return string(e) }

// Encodings returns all supported input encodings.
func Encodings() []Encoding {
	out := make([]Encoding, len(encodings))
	copy(out, encodings)
	return out
}

// ParseEncoding parses an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	for _, e := range encodings {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, s)
}

// Decoder reads a stream of records and returns each as a value tree.
type Decoder struct {
	enc   Encoding
	next  func() (Value, error)
	log   *zap.Logger
	count int
}

// NewDecoder returns a Decoder reading records of the given encoding from r.
// JSON input is a sequence of JSON texts, YAML input a multi-document stream
// and msgpack input a concatenation of msgpack objects.
func NewDecoder(r io.Reader, enc Encoding) (*Decoder, error) {
	d := &Decoder{enc: enc, log: Logger()}
	switch enc {
	case EncodingJSON:
		jd := json.NewDecoder(r)
		jd.UseNumber()
		d.next = func() (Value, error) {
			var raw any
			if err := jd.Decode(&raw); err != nil {
				return nil, err
			}
			return fromJSON(raw)
		}
	case EncodingYAML:
		yd := yaml.NewDecoder(r)
		d.next = func() (Value, error) {
			var node yaml.Node
			if err := yd.Decode(&node); err != nil {
				return nil, err
			}
			return fromYAML(&node)
		}
	case EncodingMsgpack:
		md := msgpack.NewDecoder(r)
		md.SetMapDecoder(func(dec *msgpack.Decoder) (any, error) {
			return dec.DecodeUntypedMap()
		})
		d.next = func() (Value, error) {
			raw, err := md.DecodeInterface()
			if err != nil {
				return nil, err
			}
			return ToValue(raw)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
	return d, nil
}

// Decode returns the next record. It returns io.EOF once the input is
// exhausted; any other failure is a [*ConversionError].
func (d *Decoder) Decode() (Value, error) {
	v, err := d.next()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		var convErr *ConversionError
		if errors.As(err, &convErr) {
			return nil, err
		}
		return nil, &ConversionError{
			Path:   []string{strconv.Itoa(d.count)},
			Detail: "decode " + string(d.enc),
			Cause:  err,
		}
	}
	d.log.Debug("decoded record",
		zap.Stringer("encoding", d.enc),
		zap.Int("record", d.count),
		zap.Stringer("kind", v.Kind()),
	)
	d.count++
	return v, nil
}

// FromJSON decodes a single JSON document.
func FromJSON(data []byte) (Value, error) {
	return decodeOne(data, EncodingJSON)
}

// FromYAML decodes a single YAML document.
func FromYAML(data []byte) (Value, error) {
	return decodeOne(data, EncodingYAML)
}

// FromMsgpack decodes a single msgpack object.
func FromMsgpack(data []byte) (Value, error) {
	return decodeOne(data, EncodingMsgpack)
}

func decodeOne(data []byte, enc Encoding) (Value, error) {
	d, err := NewDecoder(bytes.NewReader(data), enc)
	if err != nil {
		return nil, err
	}
	v, err := d.Decode()
	if errors.Is(err, io.EOF) {
		return nil, &ConversionError{Detail: "empty " + string(enc) + " input", Cause: io.ErrUnexpectedEOF}
	}
	return v, err
}

func fromJSON(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Unit{}, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return I64(i), nil
		}
		if u, err := strconv.ParseUint(string(x), 10, 64); err == nil {
			return U64(u), nil
		}
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return nil, &ConversionError{Detail: "json number " + string(x), Cause: err}
		}
		return F64(f), nil
	case []any:
		out := make(Seq, len(x))
		for i, e := range x {
			v, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case map[string]any:
		entries := make([]Entry, 0, len(x))
		for k, e := range x {
			v, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: String(k), Value: v})
		}
		return NewMap(entries...), nil
	default:
		return String(fmt.Sprint(x)), nil
	}
}

func fromYAML(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Unit{}, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.SequenceNode:
		out := make(Seq, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		// Merged entries go first so explicit keys override them in NewMap.
		var merged, entries []Entry
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].ShortTag() == "!!merge" {
				m, err := yamlMerge(n.Content[i+1])
				if err != nil {
					return nil, err
				}
				merged = append(merged, m...)
				continue
			}
			k, err := fromYAML(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: k, Value: v})
		}
		return NewMap(append(merged, entries...)...), nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, &ConversionError{
			Path:   []string{"line " + strconv.Itoa(n.Line)},
			Detail: fmt.Sprintf("unexpected yaml node kind %d", n.Kind),
		}
	}
}

// yamlMerge returns the entries a "<<" key pulls in: one mapping, or a
// sequence of mappings where earlier ones take precedence.
func yamlMerge(n *yaml.Node) ([]Entry, error) {
	v, err := fromYAML(n)
	if err != nil {
		return nil, err
	}
	var sources []Map
	switch x := v.(type) {
	case Map:
		sources = append(sources, x)
	case Seq:
		for _, e := range x {
			m, ok := e.(Map)
			if !ok {
				return nil, yamlMergeError(n, e)
			}
			sources = append(sources, m)
		}
	default:
		return nil, yamlMergeError(n, v)
	}
	var out []Entry
	for i := len(sources) - 1; i >= 0; i-- {
		out = append(out, sources[i].entries...)
	}
	return out, nil
}

func yamlMergeError(n *yaml.Node, v Value) error {
	return &ConversionError{
		Path:   []string{"line " + strconv.Itoa(n.Line)},
		Detail: "yaml merge of " + v.Kind().String() + ", want mapping",
	}
}

func yamlScalar(n *yaml.Node) (Value, error) {
	fail := func(err error) (Value, error) {
		return nil, &ConversionError{
			Path:   []string{"line " + strconv.Itoa(n.Line)},
			Detail: "yaml " + n.ShortTag() + " " + strconv.Quote(n.Value),
			Cause:  err,
		}
	}
	switch n.ShortTag() {
	case "!!null":
		return Unit{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return fail(err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return I64(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return fail(err)
		}
		return U64(u), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return fail(err)
		}
		if math.IsInf(f, 0) && !strings.Contains(strings.ToLower(n.Value), "inf") {
			return fail(strconv.ErrRange)
		}
		return F64(f), nil
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return fail(err)
		}
		return Bytes(b), nil
	default:
		return String(n.Value), nil
	}
}
