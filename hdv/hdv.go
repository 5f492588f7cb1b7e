// Package hdv defines the contract between tableio and the HDV codecs.
//
// HDV has a binary and a text encoding. Their wire formats live outside this
// module; tableio only calls them through BinaryCodec and TextCodec.
package hdv

import (
	"errors"
	"io"

	"github.com/framekit/tableio/frame"
)

// ErrNoCodec is returned when an HDV file is dispatched but no codec for its
// encoding was configured.
var ErrNoCodec = errors.New("hdv: no codec configured")

// BinaryCodec reads and writes the binary HDV encoding.
type BinaryCodec interface {
	// Read decodes a whole frame from r.
	Read(r io.Reader) (*frame.Frame, error)
	// Write encodes f to w.
	Write(w io.Writer, f *frame.Frame) error
}

// TextCodec reads and writes the text HDV encoding.
type TextCodec interface {
	// Read decodes a whole frame from r.
	Read(r io.Reader) (*frame.Frame, error)
	// Write encodes f to w.
	Write(w io.Writer, f *frame.Frame, opts TextWriterOptions) error
}

// TextWriterOptions configures TextCodec.Write.
type TextWriterOptions struct {
	// IsCSVHeader makes the writer emit a CSV-style header row.
	IsCSVHeader bool
}
