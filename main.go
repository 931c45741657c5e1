package main

import (
	"os"

	"github.com/example/tvorets/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
