// statsctl runs ingest and reports against the configured record store
// without going through the HTTP server.
//
// Usage:
//
//	statsctl ingest temp/dataset.csv
//	statsctl report year-count
//	statsctl report age-year --year-from 2009 --year-to 2018
package main

import (
	"fmt"
	"os"

	"accidentstats/cmd/statsctl/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
