package tableio

import (
	"errors"
	"io/fs"
)

// Sentinel errors for the failure kinds a dispatch can end in.
// Every error returned by a Dispatcher matches exactly one of them.
var (
	// ErrMissingExtension indicates the path's final component has no extension.
	ErrMissingExtension = errors.New("tableio: missing file extension")

	// ErrUnsupportedFormat indicates an extension no codec is registered for.
	ErrUnsupportedFormat = errors.New("tableio: unsupported format")

	// ErrUnsupportedWriteMode indicates a format that can be read but not written.
	ErrUnsupportedWriteMode = errors.New("tableio: format is read-only")

	// ErrIO indicates the file could not be opened, created, flushed or closed.
	ErrIO = errors.New("tableio: i/o failure")

	// ErrCodec indicates the codec rejected the content.
	ErrCodec = errors.New("tableio: codec failure")
)

// PathError records a failed dispatch and the path that caused it.
type PathError struct {
	Op   string // "read" or "write"
	Path string
	Ext  string // empty when the extension could not be resolved
	Kind error  // one of the sentinel errors above
	Err  error  // underlying cause, may be nil
}

func (e *PathError) Error() string {
	msg := e.Op + " " + e.Path
	if e.Ext != "" {
		msg += " (" + e.Ext + ")"
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match both the kind and the cause.
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classify picks ErrIO for filesystem failures and ErrCodec for the rest.
func classify(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return ErrIO
	}
	return ErrCodec
}
