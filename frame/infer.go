package frame

import (
	"fmt"
	"strconv"
)

// Widen returns the narrowest type able to hold values of both a and b.
// Null widens to anything; Int64 and Float64 widen to Float64; any other
// mix widens to String.
func Widen(a, b DataType) DataType {
	switch {
	case a == Null:
		return b
	case b == Null, a == b:
		return a
	case (a == Int64 && b == Float64) || (a == Float64 && b == Int64):
		return Float64
	default:
		return String
	}
}

// Resolve maps a fully inferred type to a storable column type.
// Columns that only ever saw nulls become String columns.
func Resolve(t DataType) DataType {
	if t == Null {
		return String
	}
	return t
}

// Coerce converts an inferred value to the given column type.
func Coerce(v any, t DataType) (any, error) {
	if v == nil {
		return nil, nil
	}
	if n, ok := v.(int); ok {
		v = int64(n)
	}
	if valueMatches(t, v) {
		return v, nil
	}
	switch t {
	case Float64:
		if n, ok := v.(int64); ok {
			return float64(n), nil
		}
	case String:
		switch x := v.(type) {
		case bool:
			return strconv.FormatBool(x), nil
		case int64:
			return strconv.FormatInt(x, 10), nil
		case float64:
			return FormatFloat(x), nil
		}
	}
	return nil, fmt.Errorf("%T as %s: %w", v, t, ErrTypeMismatch)
}

// FormatFloat renders a float so that it reads back as a float:
// integral values keep a ".0" suffix.
func FormatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E', 'I', 'N':
			return s
		}
	}
	return s + ".0"
}

// Builder accumulates rows for a fixed schema and produces a Frame.
type Builder struct {
	schema Schema
	values [][]any
}

// NewBuilder returns a builder for the given schema.
func NewBuilder(schema Schema) *Builder {
	return &Builder{schema: schema, values: make([][]any, len(schema))}
}

// Append adds one row. Values are coerced to the schema types; a short
// row is padded with nulls.
func (b *Builder) Append(row []any) error {
	if len(row) > len(b.schema) {
		return fmt.Errorf("row has %d values, want at most %d: %w", len(row), len(b.schema), ErrLengthMismatch)
	}
	for i, field := range b.schema {
		var v any
		if i < len(row) {
			var err error
			if v, err = Coerce(row[i], field.Type); err != nil {
				return fmt.Errorf("column %q: %w", field.Name, err)
			}
		}
		b.values[i] = append(b.values[i], v)
	}
	return nil
}

// Frame returns the built frame.
func (b *Builder) Frame() (*Frame, error) {
	cols := make([]*Column, len(b.schema))
	for i, field := range b.schema {
		values := b.values[i]
		if values == nil {
			values = []any{}
		}
		cols[i] = &Column{name: field.Name, dtype: field.Type, values: values}
	}
	return New(cols...)
}
