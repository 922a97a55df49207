// Package main is the entry point for the playkit scenario runner.
package main

import (
	"os"

	"github.com/jmylchreest/playkit/cmd/playkit-sim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
