// Package cli provides the pricekit command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/pricekit/pkg/log"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates the root command with all subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pricekit",
		Short: "pricekit - used-car price dataset preparation",
		Long: `pricekit prepares a used-car listing dataset for price regression.

It ingests a zip archive holding one CSV file, handles missing values, runs
the registered column transforms, filters outliers per column and splits the
result into train and test sets.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newInspectCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// setupLogging routes logs and library warnings to stderr at level.
func setupLogging(level string) {
	log.SetProvider(log.NewZerologProvider(log.ToLogLevel(level)))
}
