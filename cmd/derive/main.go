// Command derive runs column-derivation pipelines over tabular data.
//
// Usage:
//
//	derive demo
//	derive split --file data.csv --column strings --into str_1,str_2 --delimiter '|'
//	derive split --file data.csv --types id=int --column strings --into str_1,str_2
//
// Every flag may also be set through a DERIVE_ environment variable, e.g.
// DERIVE_LOG_LEVEL=debug, or through a config file passed with --config.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
