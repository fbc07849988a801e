// Package main is the entry point for the queryviz command line tool.
package main

import (
	"os"

	"github.com/queryviz/core/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
