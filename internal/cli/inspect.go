package cli

import (
	"io"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/pricekit/core/frame"
	"github.com/YuminosukeSato/pricekit/ingest"
)

func newInspectCommand() *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "inspect <archive>",
		Short: "Describe every column of an input archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(level)
			ingestor, err := ingest.ForPath(args[0])
			if err != nil {
				return err
			}
			ds, err := ingestor.Ingest(args[0])
			if err != nil {
				return err
			}
			renderDescribe(cmd.OutOrStdout(), ds)
			return nil
		},
	}
	cmd.Flags().StringVar(&level, "log-level", "warn", "log level: debug, info, warn, error")
	return cmd
}

func renderDescribe(w io.Writer, ds *frame.Dataset) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Kind", "Count", "Missing", "Mean", "Std", "Min", "Median", "Max", "Unique", "Top"})
	for _, s := range ds.Describe() {
		if s.Kind.IsNumeric() {
			t.AppendRow(table.Row{s.Column, s.Kind, s.Count, s.Missing,
				num(s.Mean), num(s.Std), num(s.Min), num(s.Median), num(s.Max), "", ""})
			continue
		}
		t.AppendRow(table.Row{s.Column, s.Kind, s.Count, s.Missing,
			"", "", "", "", "", s.Unique, s.Top})
	}
	t.SetCaption("%d rows x %d columns", ds.NRows(), ds.NCols())
	t.Render()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
