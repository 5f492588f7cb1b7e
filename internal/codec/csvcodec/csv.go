// Package csvcodec provides the CSV codec.
//
// Files always carry a header row. Column types are inferred from every row
// of the input; there is no sampling limit.
package csvcodec

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/framekit/tableio/frame"
	"github.com/framekit/tableio/internal/codec"
)

// Compile-time checks that Codec implements the codec capabilities.
var (
	_ codec.Decoder   = (*Codec)(nil)
	_ codec.Encoder   = (*Codec)(nil)
	_ codec.Scanner   = (*Codec)(nil)
	_ codec.Extension = (*Codec)(nil)
)

var (
	// ErrNoHeader indicates an input without a header row.
	ErrNoHeader = errors.New("csvcodec: missing header row")

	// ErrHeaderChanged indicates the file header no longer matches the
	// schema inferred when the file was scanned.
	ErrHeaderChanged = errors.New("csvcodec: header changed since scan")
)

// Codec implements CSV reading and writing.
type Codec struct{}

// New returns a new CSV codec.
func New() *Codec {
	return &Codec{}
}

// Extensions returns "csv".
func (c *Codec) Extensions() []string {
	return []string{"csv"}
}

// Decode reads a CSV document into a frame.
func (c *Codec) Decode(r io.Reader) (*frame.Frame, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return build(inferSchema(header, rows), rows)
}

// Scan infers the schema of the file at path by reading it completely, then
// returns a plan that parses the file again when collected.
func (c *Codec) Scan(path string) (*frame.LazyFrame, error) {
	schema, err := scanSchema(path)
	if err != nil {
		return nil, err
	}
	return frame.Scan(schema, func() (*frame.Frame, error) {
		return readWithSchema(path, schema)
	}), nil
}

// Encode writes f with a header row using the default delimiter and quoting.
// Nulls are written as empty fields.
func (c *Codec) Encode(w io.Writer, f *frame.Frame) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := writeRecord(cw, bw, f.ColumnNames()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	cols := f.Columns()
	record := make([]string, len(cols))
	for i := 0; i < f.Height(); i++ {
		for j, col := range cols {
			record[j] = formatField(col.Value(i))
		}
		if err := writeRecord(cw, bw, record); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// writeRecord writes one record. A record holding a single empty field is
// written as a quoted empty string, since csv.Reader skips blank lines.
func writeRecord(cw *csv.Writer, bw *bufio.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := bw.WriteString("\"\"\n")
	return err
}

func scanSchema(path string) (frame.Schema, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cr := newReader(file)
	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	types := make([]frame.DataType, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		for i, field := range rec {
			types[i] = frame.Widen(types[i], classify(field))
		}
	}
	return schemaOf(header, types), nil
}

func readWithSchema(path string, schema frame.Schema) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cr := newReader(file)
	header, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, schema.Names()) {
		return nil, fmt.Errorf("%s: %w", path, ErrHeaderChanged)
	}

	b := frame.NewBuilder(schema)
	row := make([]any, len(schema))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		for i, field := range rec {
			if row[i], err = parseField(field, schema[i].Type); err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line, schema[i].Name, err)
			}
		}
		if err := b.Append(row); err != nil {
			return nil, err
		}
	}
	return b.Frame()
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	cr := newReader(r)
	header, err := readHeader(cr)
	if err != nil {
		return nil, nil, err
	}
	cr.ReuseRecord = false
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading rows: %w", err)
	}
	return header, rows, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	return cr
}

func readHeader(cr *csv.Reader) ([]string, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return slices.Clone(header), nil
}

func inferSchema(header []string, rows [][]string) frame.Schema {
	types := make([]frame.DataType, len(header))
	for _, rec := range rows {
		for i, field := range rec {
			types[i] = frame.Widen(types[i], classify(field))
		}
	}
	return schemaOf(header, types)
}

func schemaOf(header []string, types []frame.DataType) frame.Schema {
	schema := make(frame.Schema, len(header))
	for i, name := range header {
		schema[i] = frame.Field{Name: name, Type: frame.Resolve(types[i])}
	}
	return schema
}

func build(schema frame.Schema, rows [][]string) (*frame.Frame, error) {
	b := frame.NewBuilder(schema)
	row := make([]any, len(schema))
	for n, rec := range rows {
		for i, field := range rec {
			var err error
			if row[i], err = parseField(field, schema[i].Type); err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", n+2, schema[i].Name, err)
			}
		}
		if err := b.Append(row); err != nil {
			return nil, err
		}
	}
	return b.Frame()
}

// classify returns the narrowest type that can represent field.
func classify(field string) frame.DataType {
	if field == "" {
		return frame.Null
	}
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return frame.Int64
	}
	// ParseFloat also accepts words like "inf" and "nan".
	if _, err := strconv.ParseFloat(field, 64); err == nil && strings.ContainsAny(field, "0123456789") {
		return frame.Float64
	}
	if _, ok := parseBool(field); ok {
		return frame.Bool
	}
	return frame.String
}

func parseField(field string, t frame.DataType) (any, error) {
	if field == "" {
		return nil, nil
	}
	switch t {
	case frame.Int64:
		return strconv.ParseInt(field, 10, 64)
	case frame.Float64:
		return strconv.ParseFloat(field, 64)
	case frame.Bool:
		b, ok := parseBool(field)
		if !ok {
			return nil, fmt.Errorf("invalid bool %q", field)
		}
		return b, nil
	default:
		return field, nil
	}
}

func parseBool(field string) (bool, bool) {
	switch {
	case strings.EqualFold(field, "true"):
		return true, true
	case strings.EqualFold(field, "false"):
		return false, true
	default:
		return false, false
	}
}

func formatField(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return frame.FormatFloat(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
