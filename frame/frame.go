// Package frame provides the in-memory tabular model used by tableio.
//
// A Frame is a materialized, column-typed, row-ordered table. A LazyFrame is
// an unevaluated plan that produces a Frame when collected.
package frame

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrLengthMismatch indicates columns of different lengths.
	ErrLengthMismatch = errors.New("frame: column length mismatch")

	// ErrDuplicateColumn indicates two columns share a name.
	ErrDuplicateColumn = errors.New("frame: duplicate column name")

	// ErrColumnNotFound indicates a referenced column does not exist.
	ErrColumnNotFound = errors.New("frame: column not found")

	// ErrTypeMismatch indicates a value does not match its column type.
	ErrTypeMismatch = errors.New("frame: value does not match column type")
)

// DataType is the logical type of a column.
type DataType int

const (
	// Null is the type of a column that holds only nulls.
	Null DataType = iota
	Bool
	Int64
	Float64
	String
)

func (t DataType) String() string {
	switch t {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int64:
		return "i64"
	case Float64:
		return "f64"
	case String:
		return "str"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// Field is a named, typed column slot in a Schema.
type Field struct {
	Name string
	Type DataType
}

// Schema is the ordered list of fields of a frame.
type Schema []Field

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Index returns the position of the named field, or -1.
func (s Schema) Index(name string) int {
	for i, f := range s {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.Name + ":" + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Column is a named sequence of values of one type.
// A nil value is a null.
type Column struct {
	name   string
	dtype  DataType
	values []any
}

// NewColumn creates a column after checking every value against dtype.
// Accepted Go types are bool, int64, float64 and string; nil is null.
// Plain int values are accepted for Int64 columns and stored as int64.
func NewColumn(name string, dtype DataType, values []any) (*Column, error) {
	stored := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		if n, ok := v.(int); ok && dtype == Int64 {
			v = int64(n)
		}
		if !valueMatches(dtype, v) {
			return nil, fmt.Errorf("column %q row %d: %T as %s: %w", name, i, v, dtype, ErrTypeMismatch)
		}
		stored[i] = v
	}
	return &Column{name: name, dtype: dtype, values: stored}, nil
}

// MustColumn is like NewColumn but panics on error.
func MustColumn(name string, dtype DataType, values ...any) *Column {
	c, err := NewColumn(name, dtype, values)
	if err != nil {
		panic(err)
	}
	return c
}

func valueMatches(dtype DataType, v any) bool {
	switch dtype {
	case Bool:
		_, ok := v.(bool)
		return ok
	case Int64:
		_, ok := v.(int64)
		return ok
	case Float64:
		_, ok := v.(float64)
		return ok
	case String:
		_, ok := v.(string)
		return ok
	default:
		return false
	}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the column type.
func (c *Column) Type() DataType { return c.dtype }

// Len returns the number of values.
func (c *Column) Len() int { return len(c.values) }

// Value returns the i-th value, nil for null.
func (c *Column) Value(i int) any { return c.values[i] }

// NullCount returns the number of null values.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.values {
		if v == nil {
			n++
		}
	}
	return n
}

// Values returns a copy of the column values.
func (c *Column) Values() []any {
	out := make([]any, len(c.values))
	copy(out, c.values)
	return out
}

func (c *Column) renamed(name string) *Column {
	return &Column{name: name, dtype: c.dtype, values: c.values}
}

// Frame is a materialized table: ordered columns of equal length.
type Frame struct {
	columns []*Column
	index   map[string]int
}

// New creates a frame from columns. Column names must be unique and all
// columns must have the same length.
func New(columns ...*Column) (*Frame, error) {
	f := &Frame{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, ok := f.index[c.name]; ok {
			return nil, fmt.Errorf("%q: %w", c.name, ErrDuplicateColumn)
		}
		if i > 0 && c.Len() != columns[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d: %w",
				c.name, c.Len(), columns[0].Len(), ErrLengthMismatch)
		}
		f.index[c.name] = i
		f.columns = append(f.columns, c)
	}
	return f, nil
}

// Empty returns a frame with no columns and no rows.
func Empty() *Frame {
	f, _ := New()
	return f
}

// Height returns the number of rows.
func (f *Frame) Height() int {
	if len(f.columns) == 0 {
		return 0
	}
	return f.columns[0].Len()
}

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.columns) }

// Columns returns the columns in order. The slice must not be modified.
func (f *Frame) Columns() []*Column { return f.columns }

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	return f.Schema().Names()
}

// Column returns the named column.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.columns[i], true
}

// Schema returns the frame schema.
func (f *Frame) Schema() Schema {
	s := make(Schema, len(f.columns))
	for i, c := range f.columns {
		s[i] = Field{Name: c.name, Type: c.dtype}
	}
	return s
}

// Row returns a view of the i-th row.
func (f *Frame) Row(i int) Row {
	return Row{frame: f, i: i}
}

// Equal reports whether two frames have the same schema and values.
func (f *Frame) Equal(other *Frame) bool {
	if f.Width() != other.Width() || f.Height() != other.Height() {
		return false
	}
	for i, c := range f.columns {
		o := other.columns[i]
		if c.name != o.name || c.dtype != o.dtype {
			return false
		}
		for j, v := range c.values {
			if v != o.values[j] {
				return false
			}
		}
	}
	return true
}

func (f *Frame) String() string {
	return fmt.Sprintf("frame.Frame%s[%d rows]", f.Schema(), f.Height())
}

// Row is a read-only view of one frame row.
type Row struct {
	frame *Frame
	i     int
}

// Get returns the value of the named column in this row.
func (r Row) Get(name string) (any, bool) {
	c, ok := r.frame.Column(name)
	if !ok {
		return nil, false
	}
	return c.values[r.i], true
}

// Values returns the row values in column order.
func (r Row) Values() []any {
	out := make([]any, len(r.frame.columns))
	for j, c := range r.frame.columns {
		out[j] = c.values[r.i]
	}
	return out
}
