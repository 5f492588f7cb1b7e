package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var convertCmd = &cobra.Command{
	Use:   "convert [SRC] [DST]",
	Short: "Convert a tabular file to another format",
	Long: `Read SRC, optionally select columns and limit rows, and write the
result to DST. Both formats are chosen from the file extensions.

DST is created or truncated. NDJSON destinations are rejected.

Examples:
  tableio convert trips.csv trips.json
  tableio convert events.jsonl sample.csv --select id,kind --limit 100`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var (
	selectColumns []string
	limitRows     int
)

func init() {
	convertCmd.Flags().StringSliceVar(&selectColumns, "select", nil, "columns to keep, in output order")
	convertCmd.Flags().IntVar(&limitRows, "limit", -1, "maximum number of rows to write (negative for all)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	d := newDispatcher(log)
	start := time.Now()

	lf, err := d.Read(src)
	if err != nil {
		return err
	}
	if len(selectColumns) > 0 {
		lf = lf.Select(selectColumns...)
	}
	if limitRows >= 0 {
		lf = lf.Limit(limitRows)
	}

	f, err := lf.Collect()
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := d.Write(f, dst); err != nil {
		return err
	}

	log.Info("converted",
		zap.String("src", src),
		zap.String("dst", dst),
		zap.Int("rows", f.Height()),
		zap.Int("columns", f.Width()),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows x %d columns to %s\n", f.Height(), f.Width(), dst)
	return nil
}
