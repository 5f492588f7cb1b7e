// Package stats provides the metrics interface used by the dispatcher.
package stats

// Metric names emitted by tableio.
const (
	MetricReads       = "tableio_reads_total"
	MetricReadErrors  = "tableio_read_errors_total"
	MetricWrites      = "tableio_writes_total"
	MetricWriteErrors = "tableio_write_errors_total"

	// MetricRowsWritten observes the row count of every successful write.
	MetricRowsWritten = "tableio_rows_written"

	// MetricColumnsWritten is the column count of the last successful write.
	MetricColumnsWritten = "tableio_last_write_columns"
)

// Collector receives metric updates.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}

// Format returns the counter name for a per-format metric, e.g.
// "tableio_reads_total" and "csv" give "tableio_csv_reads_total".
func Format(metric, format string) string {
	const prefix = "tableio_"
	if len(metric) <= len(prefix) || metric[:len(prefix)] != prefix {
		return metric
	}
	return prefix + format + "_" + metric[len(prefix):]
}
