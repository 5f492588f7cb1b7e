// Package jsoncodec provides the JSON document codec.
//
// A document is an array of row objects. Reading is eager: the whole
// document is parsed before a frame is returned.
package jsoncodec

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/framekit/tableio/frame"
	"github.com/framekit/tableio/internal/codec"
)

// Compile-time checks that Codec implements the codec capabilities.
var (
	_ codec.Decoder   = (*Codec)(nil)
	_ codec.Encoder   = (*Codec)(nil)
	_ codec.Extension = (*Codec)(nil)
)

// ErrNotArray indicates a document that is not an array of objects.
var ErrNotArray = errors.New("jsoncodec: document is not an array of objects")

// Codec implements JSON document reading and writing.
type Codec struct{}

// New returns a new JSON codec.
func New() *Codec {
	return &Codec{}
}

// Extensions returns "json".
func (c *Codec) Extensions() []string {
	return []string{"json"}
}

// Decode parses a JSON array of objects. Columns appear in the order their
// keys are first seen; rows missing a key get a null.
func (c *Codec) Decode(r io.Reader) (*frame.Frame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	acc := NewAccumulator()
	for dec.More() {
		if err := acc.DecodeObject(dec); err != nil {
			return nil, fmt.Errorf("row %d: %w", acc.Rows(), err)
		}
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after document: %w", ErrNotArray)
	}
	return acc.Frame()
}

// Encode writes f as a single JSON array of row objects in column order.
// Column names only appear inside row objects, so a frame without rows is
// written as [] and reads back with no columns.
func (c *Codec) Encode(w io.Writer, f *frame.Frame) error {
	bw := bufio.NewWriter(w)

	keys := make([][]byte, f.Width())
	for j, name := range f.ColumnNames() {
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys[j] = k
	}

	bw.WriteByte('[')
	for i := 0; i < f.Height(); i++ {
		if i > 0 {
			bw.WriteByte(',')
		}
		if err := WriteObject(bw, keys, f, i); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	bw.WriteByte(']')
	return bw.Flush()
}

// WriteObject writes row i of f as one JSON object. keys holds the encoded
// column names.
func WriteObject(w *bufio.Writer, keys [][]byte, f *frame.Frame, i int) error {
	w.WriteByte('{')
	for j, col := range f.Columns() {
		if j > 0 {
			w.WriteByte(',')
		}
		w.Write(keys[j])
		w.WriteByte(':')
		if err := writeValue(w, col.Value(i)); err != nil {
			return fmt.Errorf("column %q: %w", col.Name(), err)
		}
	}
	return w.WriteByte('}')
}

func writeValue(w *bufio.Writer, v any) error {
	switch x := v.(type) {
	case nil:
		w.WriteString("null")
	case bool:
		w.WriteString(strconv.FormatBool(x))
	case int64:
		w.WriteString(strconv.FormatInt(x, 10))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			w.WriteString("null")
			return nil
		}
		w.WriteString(frame.FormatFloat(x))
	case string:
		b, err := json.Marshal(x)
		if err != nil {
			return err
		}
		w.Write(b)
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("got %v, want %q: %w", tok, want, ErrNotArray)
	}
	return nil
}

// Accumulator collects JSON row objects and infers a schema over all of
// them. It is shared with the newline-delimited codec.
type Accumulator struct {
	names   []string
	index   map[string]int
	types   []frame.DataType
	rows    [][]any
	n       int
	discard bool
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[string]int)}
}

// DiscardRows makes the accumulator infer the schema without keeping rows.
func (a *Accumulator) DiscardRows() { a.discard = true }

// Rows returns the number of objects seen so far.
func (a *Accumulator) Rows() int { return a.n }

// Values returns the accumulated rows. Rows may be shorter than the schema.
func (a *Accumulator) Values() [][]any { return a.rows }

// Schema returns the schema inferred so far.
func (a *Accumulator) Schema() frame.Schema {
	schema := make(frame.Schema, len(a.names))
	for i, name := range a.names {
		schema[i] = frame.Field{Name: name, Type: frame.Resolve(a.types[i])}
	}
	return schema
}

// DecodeObject reads one object from dec and records it as a row.
func (a *Accumulator) DecodeObject(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("got %v, want object: %w", tok, ErrNotArray)
	}

	row := make([]any, len(a.names))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("object key %v is not a string", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		v, t, err := ParseValue(raw)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		i, ok := a.index[key]
		if !ok {
			i = len(a.names)
			a.index[key] = i
			a.names = append(a.names, key)
			a.types = append(a.types, frame.Null)
		}
		for len(row) <= i {
			row = append(row, nil)
		}
		row[i] = v
		a.types[i] = frame.Widen(a.types[i], t)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	a.n++
	if !a.discard {
		a.rows = append(a.rows, row)
	}
	return nil
}

// Frame builds the accumulated rows into a frame.
func (a *Accumulator) Frame() (*frame.Frame, error) {
	b := frame.NewBuilder(a.Schema())
	for _, row := range a.rows {
		if err := b.Append(row); err != nil {
			return nil, err
		}
	}
	return b.Frame()
}

// ParseValue converts one raw JSON value to a frame value and its type.
// Nested arrays and objects are kept as their compact JSON text.
func ParseValue(raw json.RawMessage) (any, frame.DataType, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, frame.Null, errors.New("empty value")
	}
	switch raw[0] {
	case 'n':
		return nil, frame.Null, nil
	case 't':
		return true, frame.Bool, nil
	case 'f':
		return false, frame.Bool, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, frame.Null, err
		}
		return s, frame.String, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, frame.Null, err
		}
		return buf.String(), frame.String, nil
	default:
		text := string(raw)
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n, frame.Int64, nil
		}
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, frame.Null, fmt.Errorf("invalid number %q: %w", text, err)
		}
		return x, frame.Float64, nil
	}
}
