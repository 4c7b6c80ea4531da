// Command pricekit prepares a used-car listing dataset for price regression.
package main

import (
	"os"

	"github.com/YuminosukeSato/pricekit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
