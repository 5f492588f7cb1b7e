// Package ndjsoncodec provides the newline-delimited JSON codec.
//
// The codec is read-only. It infers the schema from every record; columns
// are the union of all keys in first-seen order.
package ndjsoncodec

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/framekit/tableio/frame"
	"github.com/framekit/tableio/internal/codec"
	"github.com/framekit/tableio/internal/codec/jsoncodec"
)

// Compile-time checks that Codec implements the codec capabilities.
var (
	_ codec.Decoder   = (*Codec)(nil)
	_ codec.Scanner   = (*Codec)(nil)
	_ codec.Extension = (*Codec)(nil)
)

// ErrSchemaChanged indicates the file no longer matches the schema inferred
// when it was scanned.
var ErrSchemaChanged = errors.New("ndjsoncodec: schema changed since scan")

// Codec implements newline-delimited JSON reading.
type Codec struct{}

// New returns a new NDJSON codec.
func New() *Codec {
	return &Codec{}
}

// Extensions returns "ndjson" and "jsonl".
func (c *Codec) Extensions() []string {
	return []string{"ndjson", "jsonl"}
}

// Decode reads all records from r into a frame.
func (c *Codec) Decode(r io.Reader) (*frame.Frame, error) {
	acc := jsoncodec.NewAccumulator()
	if err := readRecords(r, acc); err != nil {
		return nil, err
	}
	return acc.Frame()
}

// Scan infers the schema of the file at path and returns a plan that reads
// the records when collected.
func (c *Codec) Scan(path string) (*frame.LazyFrame, error) {
	acc := jsoncodec.NewAccumulator()
	acc.DiscardRows()
	if err := readFile(path, acc); err != nil {
		return nil, err
	}
	schema := acc.Schema()

	return frame.Scan(schema, func() (*frame.Frame, error) {
		return collect(path, schema)
	}), nil
}

func collect(path string, schema frame.Schema) (*frame.Frame, error) {
	acc := jsoncodec.NewAccumulator()
	if err := readFile(path, acc); err != nil {
		return nil, err
	}
	if !slices.Equal(acc.Schema().Names(), schema.Names()) {
		return nil, fmt.Errorf("%s: %w", path, ErrSchemaChanged)
	}

	b := frame.NewBuilder(schema)
	for i, row := range acc.Values() {
		if err := b.Append(row); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return b.Frame()
}

func readFile(path string, acc *jsoncodec.Accumulator) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return readRecords(bufio.NewReader(file), acc)
}

func readRecords(r io.Reader, acc *jsoncodec.Accumulator) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	for dec.More() {
		if err := acc.DecodeObject(dec); err != nil {
			return fmt.Errorf("record %d: %w", acc.Rows()+1, err)
		}
	}
	// More stops on EOF and on stray closing delimiters alike.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected token")
		}
		return fmt.Errorf("record %d: %w", acc.Rows()+1, err)
	}
	return nil
}
