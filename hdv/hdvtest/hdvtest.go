// Package hdvtest provides recording HDV codecs for tests.
//
// The fakes do not implement the HDV wire format. They tag their output
// with a magic line and store the frame as a JSON document, which is enough
// for a writer/reader pair to round-trip a frame through a file.
package hdvtest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/framekit/tableio/frame"
	"github.com/framekit/tableio/hdv"
	"github.com/framekit/tableio/internal/codec/jsoncodec"
)

// Compile-time checks that the fakes implement the hdv contract.
var (
	_ hdv.BinaryCodec = (*Binary)(nil)
	_ hdv.TextCodec   = (*Text)(nil)
)

const (
	binaryMagic = "HDVB-FAKE"
	textMagic   = "HDVT-FAKE"
)

// ErrBadMagic indicates input that was not produced by the matching fake.
var ErrBadMagic = errors.New("hdvtest: bad magic")

// Calls counts how often a fake was used.
type Calls struct {
	Reads  int
	Writes int
}

// Binary is a fake hdv.BinaryCodec. It is safe for concurrent use.
type Binary struct {
	mu    sync.Mutex
	calls Calls
}

// NewBinary returns a new fake binary codec.
func NewBinary() *Binary {
	return &Binary{}
}

// Read decodes a frame written by Write.
func (b *Binary) Read(r io.Reader) (*frame.Frame, error) {
	b.mu.Lock()
	b.calls.Reads++
	b.mu.Unlock()

	br := bufio.NewReader(r)
	if _, err := readMagic(br, binaryMagic); err != nil {
		return nil, err
	}
	return jsoncodec.New().Decode(br)
}

// Write encodes f.
func (b *Binary) Write(w io.Writer, f *frame.Frame) error {
	b.mu.Lock()
	b.calls.Writes++
	b.mu.Unlock()

	if _, err := io.WriteString(w, binaryMagic+"\n"); err != nil {
		return err
	}
	return jsoncodec.New().Encode(w, f)
}

// Calls returns the call counters.
func (b *Binary) Calls() Calls {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// Text is a fake hdv.TextCodec that records the writer options it receives.
type Text struct {
	mu      sync.Mutex
	calls   Calls
	options []hdv.TextWriterOptions
}

// NewText returns a new fake text codec.
func NewText() *Text {
	return &Text{}
}

// Read decodes a frame written by Write.
func (t *Text) Read(r io.Reader) (*frame.Frame, error) {
	t.mu.Lock()
	t.calls.Reads++
	t.mu.Unlock()

	br := bufio.NewReader(r)
	if _, err := readMagic(br, textMagic); err != nil {
		return nil, err
	}
	return jsoncodec.New().Decode(br)
}

// Write encodes f, recording opts.
func (t *Text) Write(w io.Writer, f *frame.Frame, opts hdv.TextWriterOptions) error {
	t.mu.Lock()
	t.calls.Writes++
	t.options = append(t.options, opts)
	t.mu.Unlock()

	header := textMagic + " is_csv_header=" + strconv.FormatBool(opts.IsCSVHeader) + "\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	return jsoncodec.New().Encode(w, f)
}

// Calls returns the call counters.
func (t *Text) Calls() Calls {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

// Options returns the writer options of every Write call, in order.
func (t *Text) Options() []hdv.TextWriterOptions {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]hdv.TextWriterOptions, len(t.options))
	copy(out, t.options)
	return out
}

func readMagic(br *bufio.Reader, magic string) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	if line != magic && !strings.HasPrefix(line, magic+" ") {
		return "", fmt.Errorf("got %q: %w", line, ErrBadMagic)
	}
	return line, nil
}
