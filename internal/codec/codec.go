// Package codec defines the capabilities a tabular format codec can offer.
//
// A codec implements the subset it supports. Read-only formats simply do not
// implement Encoder.
package codec

import (
	"io"

	"github.com/framekit/tableio/frame"
)

// Decoder reads a whole frame eagerly.
type Decoder interface {
	// Decode reads and parses everything from r.
	Decode(r io.Reader) (*frame.Frame, error)
}

// Encoder writes a materialized frame.
type Encoder interface {
	// Encode serializes f to w.
	Encode(w io.Writer, f *frame.Frame) error
}

// Scanner opens a file as a deferred plan.
type Scanner interface {
	// Scan infers the schema of the file at path and returns a plan that
	// re-reads the file when collected.
	Scan(path string) (*frame.LazyFrame, error)
}

// Extension names the extensions a codec is registered under, without dot.
type Extension interface {
	Extensions() []string
}
