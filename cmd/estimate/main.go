// Package main is the entry point for the estimate CLI, which prices a trip
// offline with the same engine the API uses.
package main

import (
	"os"

	"github.com/indianhorizon/tripplanner/cmd/estimate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
