package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/framekit/tableio"
	"github.com/framekit/tableio/internal/stats/logger"
)

var (
	// Global flags.
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tableio",
	Short: "Convert and inspect tabular files",
	Long: `Tableio reads and writes tabular files, choosing the format from the
file extension: csv, json, ndjson/jsonl (read-only), hdvb and hdvt.

Examples:
  # Convert a CSV file to JSON
  tableio convert trips.csv trips.json

  # Show the schema, the first rows and summary statistics
  tableio inspect trips.csv --head 5 --describe

  # List supported formats
  tableio formats`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger returns a development logger with --verbose and a no-op one
// otherwise.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// newDispatcher builds a dispatcher that logs its metrics with log.
func newDispatcher(log *zap.Logger) *tableio.Dispatcher {
	return tableio.New(
		tableio.WithLogger(log.Named("tableio")),
		tableio.WithStats(logger.New(log.Named("tableio.stats"))),
	)
}
