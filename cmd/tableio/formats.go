package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/framekit/tableio"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats",
	Long: `List every supported format with its file extensions and whether it
can be read and written. Extensions are case-sensitive.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tEXTENSIONS\tREAD\tWRITE")
	for _, f := range tableio.Formats() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f, strings.Join(f.Extensions(), ","), yesNo(f.Readable()), yesNo(f.Writable()))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
