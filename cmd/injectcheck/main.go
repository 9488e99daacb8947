// Package main is the entry point for the injectcheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/facemap/backend/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if errors.Is(err, cli.ErrBlockingFindings) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
