// Package main is the review-api command. It serves the HTTP API and
// carries the operational subcommands (migrate, seed, hash-password)
// that share its configuration.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
