// Package tableiofx provides an fx module for a tableio dispatcher.
package tableiofx

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/framekit/tableio"
	"github.com/framekit/tableio/hdv"
	"github.com/framekit/tableio/internal/stats"
	"github.com/framekit/tableio/internal/stats/logger"
	promstats "github.com/framekit/tableio/internal/stats/prometheus"
)

// Module provides a *tableio.Dispatcher.
// Requires a *zap.Logger to be provided. HDV codecs and a
// prometheus.Registerer are picked up when the graph supplies them.
var Module = fx.Module("tableio",
	fx.Provide(
		newStatsCollector,
		newDispatcher,
	),
)

// StatsParams holds dependencies for choosing the stats collector.
type StatsParams struct {
	fx.In

	Logger     *zap.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

// newStatsCollector exports to Prometheus when a registerer is available
// and logs metrics otherwise.
func newStatsCollector(p StatsParams) stats.Collector {
	if p.Registerer != nil {
		return promstats.New(p.Registerer)
	}
	return logger.New(p.Logger.Named("tableio.stats"))
}

// Params holds dependencies for creating the dispatcher.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Binary    hdv.BinaryCodec `optional:"true"`
	Text      hdv.TextCodec   `optional:"true"`
}

// Result holds the provided dispatcher.
type Result struct {
	fx.Out

	Dispatcher *tableio.Dispatcher
}

func newDispatcher(p Params) Result {
	opts := []tableio.Option{
		tableio.WithStats(p.Collector),
		tableio.WithLogger(p.Logger.Named("tableio")),
	}
	if p.Binary != nil {
		opts = append(opts, tableio.WithBinaryCodec(p.Binary))
	}
	if p.Text != nil {
		opts = append(opts, tableio.WithTextCodec(p.Text))
	}
	return Result{Dispatcher: tableio.New(opts...)}
}
