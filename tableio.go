// Package tableio reads and writes tabular files, picking the codec from
// the file extension.
//
// Example usage:
//
//	lf, err := tableio.ReadFile("trips.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := lf.Select("id", "fare").Limit(100).Collect()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tableio.WriteFile(f, "trips.json"); err != nil {
//	    log.Fatal(err)
//	}
//
// Extensions are matched case-sensitively: "csv", "json", "ndjson" and
// "jsonl" (read-only), "hdvb" and "hdvt". The HDV codecs are supplied by
// the caller with WithBinaryCodec and WithTextCodec.
package tableio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/framekit/tableio/frame"
	"github.com/framekit/tableio/hdv"
	"github.com/framekit/tableio/internal/codec/csvcodec"
	"github.com/framekit/tableio/internal/codec/jsoncodec"
	"github.com/framekit/tableio/internal/codec/ndjsoncodec"
	"github.com/framekit/tableio/internal/stats"
)

const (
	opRead  = "read"
	opWrite = "write"
)

// Dispatcher routes reads and writes to the codec for a path's extension.
// A Dispatcher holds only immutable configuration and is safe for
// concurrent use by multiple goroutines.
type Dispatcher struct {
	csv    *csvcodec.Codec
	json   *jsoncodec.Codec
	ndjson *ndjsoncodec.Codec
	binary hdv.BinaryCodec
	text   hdv.TextCodec
	stats  stats.Collector
	logger *zap.Logger
}

// New creates a Dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	d := &Dispatcher{
		csv:    csvcodec.New(),
		json:   jsoncodec.New(),
		ndjson: ndjsoncodec.New(),
		binary: cfg.binary,
		text:   cfg.text,
		stats:  cfg.stats,
		logger: cfg.logger,
	}

	d.logger.Debug("dispatcher initialized",
		zap.Bool("hdvBinary", d.binary != nil),
		zap.Bool("hdvText", d.text != nil),
	)

	return d
}

var defaultDispatcher = New()

// ReadFile reads path with a Dispatcher that has no HDV codecs.
func ReadFile(path string) (*frame.LazyFrame, error) {
	return defaultDispatcher.Read(path)
}

// WriteFile writes f to path with a Dispatcher that has no HDV codecs.
func WriteFile(f *frame.Frame, path string) error {
	return defaultDispatcher.Write(f, path)
}

// Read returns a plan over the table stored at path.
//
// CSV and NDJSON files are scanned once here to infer the schema and read
// again when the plan is collected. JSON and HDV files are decoded in full
// before Read returns.
func (d *Dispatcher) Read(path string) (*frame.LazyFrame, error) {
	ext, err := Extension(path)
	if err != nil {
		return nil, d.failed(&PathError{Op: opRead, Path: path, Kind: ErrMissingExtension})
	}
	format, ok := ParseFormat(ext)
	if !ok {
		return nil, d.failed(&PathError{Op: opRead, Path: path, Ext: ext, Kind: ErrUnsupportedFormat})
	}

	d.logger.Debug("reading", zap.String("path", path), zap.Stringer("format", format))

	var lf *frame.LazyFrame
	switch format {
	case FormatCSV:
		lf, err = d.csv.Scan(path)
	case FormatNDJSON:
		lf, err = d.ndjson.Scan(path)
	case FormatJSON:
		lf, err = readEager(path, d.json.Decode)
	case FormatHDVBinary:
		if d.binary == nil {
			err = hdv.ErrNoCodec
			break
		}
		lf, err = readEager(path, d.binary.Read)
	case FormatHDVText:
		if d.text == nil {
			err = hdv.ErrNoCodec
			break
		}
		lf, err = readEager(path, d.text.Read)
	}
	if err != nil {
		return nil, d.failed(&PathError{Op: opRead, Path: path, Ext: ext, Kind: classify(err), Err: err})
	}

	d.stats.IncCounter(stats.MetricReads, 1)
	d.stats.IncCounter(stats.Format(stats.MetricReads, format.String()), 1)
	return lf, nil
}

// readEager decodes the whole file before returning.
func readEager(path string, decode func(io.Reader) (*frame.Frame, error)) (*frame.LazyFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := decode(bufio.NewReader(file))
	if err != nil {
		return nil, err
	}
	return frame.FromFrame(f), nil
}

// Write stores f at path in the format named by the path's extension.
//
// The destination is created or truncated before the format is checked, so
// an unsupported or read-only extension leaves an empty file behind. A path
// without an extension is rejected before anything is touched. The caller
// must not rely on f afterward.
func (d *Dispatcher) Write(f *frame.Frame, path string) error {
	ext, err := Extension(path)
	if err != nil {
		return d.failed(&PathError{Op: opWrite, Path: path, Kind: ErrMissingExtension})
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return d.failed(&PathError{Op: opWrite, Path: path, Ext: ext, Kind: ErrIO, Err: err})
	}

	format, ok := ParseFormat(ext)
	switch {
	case !ok:
		err = &PathError{Op: opWrite, Path: path, Ext: ext, Kind: ErrUnsupportedFormat}
	case !format.Writable():
		err = &PathError{Op: opWrite, Path: path, Ext: ext, Kind: ErrUnsupportedWriteMode}
	default:
		d.logger.Debug("writing", zap.String("path", path), zap.Stringer("format", format))
		err = d.encode(format, file, f)
		if err != nil {
			err = &PathError{Op: opWrite, Path: path, Ext: ext, Kind: classify(err), Err: err}
		}
	}

	if cerr := file.Close(); cerr != nil && err == nil {
		err = &PathError{Op: opWrite, Path: path, Ext: ext, Kind: ErrIO, Err: cerr}
	}
	if err != nil {
		return d.failed(err)
	}

	d.stats.IncCounter(stats.MetricWrites, 1)
	d.stats.IncCounter(stats.Format(stats.MetricWrites, format.String()), 1)
	d.stats.ObserveHistogram(stats.MetricRowsWritten, float64(f.Height()))
	d.stats.SetGauge(stats.MetricColumnsWritten, int64(f.Width()))
	return nil
}

// encode writes f through a buffer and flushes it.
func (d *Dispatcher) encode(format Format, w io.Writer, f *frame.Frame) error {
	if f == nil {
		return errors.New("nil frame")
	}

	bw := bufio.NewWriter(w)
	var err error
	switch format {
	case FormatCSV:
		err = d.csv.Encode(bw, f)
	case FormatJSON:
		err = d.json.Encode(bw, f)
	case FormatHDVBinary:
		if d.binary == nil {
			return hdv.ErrNoCodec
		}
		err = d.binary.Write(bw, f)
	case FormatHDVText:
		if d.text == nil {
			return hdv.ErrNoCodec
		}
		err = d.text.Write(bw, f, hdv.TextWriterOptions{IsCSVHeader: false})
	default:
		return fmt.Errorf("no encoder for %s", format)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// failed records a dispatch failure and returns err unchanged.
func (d *Dispatcher) failed(err error) error {
	var pe *PathError
	if errors.As(err, &pe) {
		metric := stats.MetricReadErrors
		if pe.Op == opWrite {
			metric = stats.MetricWriteErrors
		}
		d.stats.IncCounter(metric, 1)
		d.logger.Debug(pe.Op+" failed", zap.String("path", pe.Path), zap.Error(err))
	}
	return err
}
