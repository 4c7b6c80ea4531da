package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/pricekit/internal/config"
	"github.com/YuminosukeSato/pricekit/internal/runner"
)

func newRunCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the preparation pipeline",
		Long: `Run ingest, missing values, feature engineering, outlier filtering and
the train/test split as described by a YAML pipeline file.

Flags override PRICEKIT_ environment variables, which override the file.`,
		Example: `  # Run with a pipeline file
  pricekit run --config pipeline.yaml

  # Override the split seed
  pricekit run --config pipeline.yaml --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			res, err := runner.New(cfg, nil).Run()
			if err != nil {
				return err
			}
			renderRun(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "pipeline file (YAML)")
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func renderRun(w io.Writer, res *runner.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Stage", "Rows", "Columns", "Elapsed"})
	for _, s := range res.Stages {
		t.AppendRow(table.Row{s.Stage, s.Rows, s.Columns, s.Elapsed.Round(time.Microsecond).String()})
	}
	t.Render()

	_, _ = fmt.Fprintf(w, "train: %d rows, test: %d rows, features: %d\n",
		res.Split.XTrain.NRows(), res.Split.XTest.NRows(), res.Split.XTrain.NCols())
	for _, p := range res.Plots {
		_, _ = fmt.Fprintf(w, "plot: %s\n", p)
	}
}
