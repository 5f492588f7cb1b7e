package frame

import "fmt"

// Select returns a frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		c, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("select %q: %w", name, ErrColumnNotFound)
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Filter returns a frame with the rows for which keep returns true.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	var rows []int
	for i := 0; i < f.Height(); i++ {
		if keep(f.Row(i)) {
			rows = append(rows, i)
		}
	}
	return f.take(rows)
}

// Head returns the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n >= f.Height() {
		return f
	}
	cols := make([]*Column, len(f.columns))
	for i, c := range f.columns {
		cols[i] = &Column{name: c.name, dtype: c.dtype, values: c.values[:n:n]}
	}
	out, _ := New(cols...)
	return out
}

// Rename returns a frame with column from renamed to to.
func (f *Frame) Rename(from, to string) (*Frame, error) {
	i, ok := f.index[from]
	if !ok {
		return nil, fmt.Errorf("rename %q: %w", from, ErrColumnNotFound)
	}
	cols := make([]*Column, len(f.columns))
	copy(cols, f.columns)
	cols[i] = cols[i].renamed(to)
	return New(cols...)
}

func (f *Frame) take(rows []int) *Frame {
	cols := make([]*Column, len(f.columns))
	for i, c := range f.columns {
		values := make([]any, len(rows))
		for j, r := range rows {
			values[j] = c.values[r]
		}
		cols[i] = &Column{name: c.name, dtype: c.dtype, values: values}
	}
	out, _ := New(cols...)
	return out
}
