package tableio

import (
	"go.uber.org/zap"

	"github.com/framekit/tableio/hdv"
	"github.com/framekit/tableio/internal/stats"
)

// Option configures a Dispatcher.
type Option interface {
	apply(*options)
}

// options holds the dispatcher configuration.
type options struct {
	binary hdv.BinaryCodec
	text   hdv.TextCodec
	stats  stats.Collector
	logger *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithBinaryCodec sets the codec used for "hdvb" files.
// If not set, reading or writing them fails with hdv.ErrNoCodec.
func WithBinaryCodec(c hdv.BinaryCodec) Option {
	return optionFunc(func(o *options) {
		o.binary = c
	})
}

// WithTextCodec sets the codec used for "hdvt" files.
// If not set, reading or writing them fails with hdv.ErrNoCodec.
func WithTextCodec(c hdv.TextCodec) Option {
	return optionFunc(func(o *options) {
		o.text = c
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		if c != nil {
			o.stats = c
		}
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		if l != nil {
			o.logger = l
		}
	})
}
