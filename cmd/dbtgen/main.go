// Package main provides the CLI for the dbtgen project generator.
package main

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/dbtgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
