// Package main is the entry point for the roster API server. It serves the
// HTTP API and provides operator commands for migrations and seeding.
package main

import (
	"os"
)

func main() {
	os.Exit(execute())
}
