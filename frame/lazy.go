package frame

import (
	"fmt"
)

// Source produces the materialized input of a lazy plan.
type Source func() (*Frame, error)

// LazyFrame is an unevaluated query plan over a source.
// Transformations return new plans; a LazyFrame is never mutated.
type LazyFrame struct {
	schema   Schema
	source   Source
	deferred bool
	steps    []step
}

// step is one transformation in a plan.
type step interface {
	schema(in Schema) (Schema, error)
	apply(in *Frame) (*Frame, error)
}

// Scan returns a plan that reads from source when collected.
// The schema must describe what source produces.
func Scan(schema Schema, source Source) *LazyFrame {
	return &LazyFrame{schema: schema, source: source, deferred: true}
}

// FromFrame wraps a materialized frame as a plan.
// No deferral happens: collecting returns the same data.
func FromFrame(f *Frame) *LazyFrame {
	return &LazyFrame{
		schema: f.Schema(),
		source: func() (*Frame, error) { return f, nil },
	}
}

// Deferred reports whether the plan reads its source lazily.
func (lf *LazyFrame) Deferred() bool { return lf.deferred }

// Schema returns the schema the plan produces, without running it.
func (lf *LazyFrame) Schema() (Schema, error) {
	s := lf.schema
	for _, st := range lf.steps {
		var err error
		if s, err = st.schema(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Collect executes the plan.
func (lf *LazyFrame) Collect() (*Frame, error) {
	if _, err := lf.Schema(); err != nil {
		return nil, err
	}
	f, err := lf.source()
	if err != nil {
		return nil, err
	}
	for _, st := range lf.steps {
		if f, err = st.apply(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Select keeps the named columns in the given order.
func (lf *LazyFrame) Select(names ...string) *LazyFrame {
	return lf.with(selectStep{names: names})
}

// Filter keeps rows for which keep returns true.
func (lf *LazyFrame) Filter(keep func(Row) bool) *LazyFrame {
	return lf.with(filterStep{keep: keep})
}

// Limit keeps at most n rows.
func (lf *LazyFrame) Limit(n int) *LazyFrame {
	return lf.with(limitStep{n: n})
}

// Rename renames column from to to.
func (lf *LazyFrame) Rename(from, to string) *LazyFrame {
	return lf.with(renameStep{from: from, to: to})
}

func (lf *LazyFrame) with(st step) *LazyFrame {
	steps := make([]step, len(lf.steps), len(lf.steps)+1)
	copy(steps, lf.steps)
	return &LazyFrame{
		schema:   lf.schema,
		source:   lf.source,
		deferred: lf.deferred,
		steps:    append(steps, st),
	}
}

type selectStep struct{ names []string }

func (s selectStep) schema(in Schema) (Schema, error) {
	out := make(Schema, 0, len(s.names))
	seen := make(map[string]bool, len(s.names))
	for _, name := range s.names {
		i := in.Index(name)
		if i < 0 {
			return nil, fmt.Errorf("select %q: %w", name, ErrColumnNotFound)
		}
		if seen[name] {
			return nil, fmt.Errorf("select %q: %w", name, ErrDuplicateColumn)
		}
		seen[name] = true
		out = append(out, in[i])
	}
	return out, nil
}

func (s selectStep) apply(in *Frame) (*Frame, error) { return in.Select(s.names...) }

type filterStep struct{ keep func(Row) bool }

func (s filterStep) schema(in Schema) (Schema, error) { return in, nil }

func (s filterStep) apply(in *Frame) (*Frame, error) { return in.Filter(s.keep), nil }

type limitStep struct{ n int }

func (s limitStep) schema(in Schema) (Schema, error) { return in, nil }

func (s limitStep) apply(in *Frame) (*Frame, error) { return in.Head(s.n), nil }

type renameStep struct{ from, to string }

func (s renameStep) schema(in Schema) (Schema, error) {
	i := in.Index(s.from)
	if i < 0 {
		return nil, fmt.Errorf("rename %q: %w", s.from, ErrColumnNotFound)
	}
	if s.from != s.to && in.Index(s.to) >= 0 {
		return nil, fmt.Errorf("rename to %q: %w", s.to, ErrDuplicateColumn)
	}
	out := make(Schema, len(in))
	copy(out, in)
	out[i].Name = s.to
	return out, nil
}

func (s renameStep) apply(in *Frame) (*Frame, error) { return in.Rename(s.from, s.to) }
