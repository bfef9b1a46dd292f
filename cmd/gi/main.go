package main

import (
	"log"
	"os"

	"github.com/brandonbloom/gi/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gi: ")

	if err := cli.Execute(); err != nil {
		os.Exit(cli.ReportError(os.Stderr, err))
	}
}
