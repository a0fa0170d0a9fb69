package main

import (
	"os"

	"github.com/sprite-ai/bugalert/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
