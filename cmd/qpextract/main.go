package main

import (
	"os"

	"github.com/opd-ai/qpextract/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
