package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/framekit/tableio/frame"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [PATH]",
	Short: "Show the schema and first rows of a tabular file",
	Long: `Print the schema of PATH followed by its first rows.

With --describe, also print count, null_count, mean, std, min, max and
median for every numeric column.

Examples:
  tableio inspect trips.csv
  tableio inspect trips.json --head 20 --describe`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	headRows int
	describe bool
)

func init() {
	inspectCmd.Flags().IntVar(&headRows, "head", 10, "number of rows to show")
	inspectCmd.Flags().BoolVar(&describe, "describe", false, "show summary statistics for numeric columns")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	lf, err := newDispatcher(log).Read(path)
	if err != nil {
		return err
	}
	schema, err := lf.Schema()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Path:    %s\n", path)
	fmt.Fprintf(out, "Columns: %d\n", len(schema))
	for _, field := range schema {
		fmt.Fprintf(out, "  %s: %s\n", field.Name, field.Type)
	}

	if !describe {
		lf = lf.Limit(headRows)
	}
	f, err := lf.Collect()
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	fmt.Fprintln(out)
	if err := printTable(out, f.Head(headRows)); err != nil {
		return err
	}

	if describe {
		summary, err := f.Describe()
		if err != nil {
			return fmt.Errorf("describing %s: %w", path, err)
		}
		fmt.Fprintf(out, "\nRows: %d\n\n", f.Height())
		return printTable(out, summary)
	}
	return nil
}

// printTable writes f as aligned columns, showing nulls as "null".
func printTable(w io.Writer, f *frame.Frame) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(f.ColumnNames(), "\t"))

	cells := make([]string, f.Width())
	for i := 0; i < f.Height(); i++ {
		for j, col := range f.Columns() {
			cells[j] = formatCell(col.Value(i))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(x, 'g', 6, 64)
	default:
		return fmt.Sprint(x)
	}
}
