// Command radarctl is the operator CLI for ufcradar. It computes radars and
// checks fighter names against the configured CSV exports, imports events
// into the SQLite archive and probes a running server.
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
