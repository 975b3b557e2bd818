package main

import (
	"os"

	"github.com/ritualhq/ritual/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
