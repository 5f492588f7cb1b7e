package frame

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		MustColumn("id", Int64, 1, 2, 3),
		MustColumn("name", String, "a", "b", nil),
		MustColumn("score", Float64, 1.5, nil, 3.0),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

func TestNew(t *testing.T) {
	f := testFrame(t)
	if f.Height() != 3 || f.Width() != 3 {
		t.Errorf("shape = (%d, %d), want (3, 3)", f.Height(), f.Width())
	}
	want := Schema{{"id", Int64}, {"name", String}, {"score", Float64}}
	if diff := cmp.Diff(want, f.Schema()); diff != "" {
		t.Errorf("Schema() mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		cols []*Column
		want error
	}{
		{
			name: "duplicate",
			cols: []*Column{MustColumn("a", Int64, 1), MustColumn("a", Int64, 2)},
			want: ErrDuplicateColumn,
		},
		{
			name: "length mismatch",
			cols: []*Column{MustColumn("a", Int64, 1), MustColumn("b", Int64, 1, 2)},
			want: ErrLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols...)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewColumn_TypeMismatch(t *testing.T) {
	_, err := NewColumn("a", Int64, []any{"x"})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("NewColumn() error = %v, want ErrTypeMismatch", err)
	}
}

func TestNewColumn_AcceptsInt(t *testing.T) {
	c, err := NewColumn("a", Int64, []any{7, nil})
	if err != nil {
		t.Fatalf("NewColumn() error = %v", err)
	}
	if c.Value(0) != int64(7) {
		t.Errorf("Value(0) = %#v, want int64(7)", c.Value(0))
	}
	if c.NullCount() != 1 {
		t.Errorf("NullCount() = %d, want 1", c.NullCount())
	}
}

func TestFrame_Row(t *testing.T) {
	f := testFrame(t)
	row := f.Row(1)
	if v, ok := row.Get("name"); !ok || v != "b" {
		t.Errorf("Get(name) = %v, %v; want b, true", v, ok)
	}
	if _, ok := row.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
	if diff := cmp.Diff([]any{int64(2), "b", nil}, row.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
}

func TestFrame_Equal(t *testing.T) {
	a := testFrame(t)
	b := testFrame(t)
	if !a.Equal(b) {
		t.Error("identical frames should be equal")
	}
	c, _ := a.Rename("id", "key")
	if a.Equal(c) {
		t.Error("renamed frame should not be equal")
	}
}

func TestFrame_Select(t *testing.T) {
	f := testFrame(t)
	got, err := f.Select("score", "id")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if diff := cmp.Diff([]string{"score", "id"}, got.ColumnNames()); diff != "" {
		t.Errorf("ColumnNames() mismatch (-want +got):\n%s", diff)
	}
	if _, err := f.Select("nope"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Select(nope) error = %v, want ErrColumnNotFound", err)
	}
}

func TestFrame_FilterAndHead(t *testing.T) {
	f := testFrame(t)
	odd := f.Filter(func(r Row) bool {
		v, _ := r.Get("id")
		return v.(int64)%2 == 1
	})
	if odd.Height() != 2 {
		t.Fatalf("Filter() height = %d, want 2", odd.Height())
	}
	if got := odd.Head(1).Height(); got != 1 {
		t.Errorf("Head(1) height = %d, want 1", got)
	}
	if got := odd.Head(10).Height(); got != 2 {
		t.Errorf("Head(10) height = %d, want 2", got)
	}
}

func TestWiden(t *testing.T) {
	tests := []struct {
		a, b DataType
		want DataType
	}{
		{Null, Int64, Int64},
		{Int64, Null, Int64},
		{Int64, Int64, Int64},
		{Int64, Float64, Float64},
		{Float64, Int64, Float64},
		{Bool, Int64, String},
		{String, Float64, String},
	}
	for _, tt := range tests {
		if got := Widen(tt.a, tt.b); got != tt.want {
			t.Errorf("Widen(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		1:    "1.0",
		1.5:  "1.5",
		-3:   "-3.0",
		1e21: "1000000000000000000000.0",
	}
	for in, want := range tests {
		if got := FormatFloat(in); got != want {
			t.Errorf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(Schema{{"x", Float64}, {"y", String}})
	if err := b.Append([]any{int64(1), true}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := b.Append([]any{2.5}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	f, err := b.Frame()
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	x, _ := f.Column("x")
	y, _ := f.Column("y")
	if diff := cmp.Diff([]any{1.0, 2.5}, x.Values()); diff != "" {
		t.Errorf("x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"true", nil}, y.Values()); diff != "" {
		t.Errorf("y mismatch (-want +got):\n%s", diff)
	}
	if err := b.Append([]any{1.0, "a", "extra"}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Append(long row) error = %v, want ErrLengthMismatch", err)
	}
}

func TestDescribe(t *testing.T) {
	f := testFrame(t)
	d, err := f.Describe()
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if diff := cmp.Diff([]string{"statistic", "id", "score"}, d.ColumnNames()); diff != "" {
		t.Fatalf("ColumnNames() mismatch (-want +got):\n%s", diff)
	}
	id, _ := d.Column("id")
	want := []any{3.0, 0.0, 2.0, 1.0, 1.0, 3.0, 2.0}
	if diff := cmp.Diff(want, id.Values()); diff != "" {
		t.Errorf("id stats mismatch (-want +got):\n%s", diff)
	}
	score, _ := d.Column("score")
	if got := score.Value(1); got != 1.0 {
		t.Errorf("score null_count = %v, want 1", got)
	}
	if got := score.Value(6); got != 2.25 {
		t.Errorf("score median = %v, want 2.25", got)
	}
}
