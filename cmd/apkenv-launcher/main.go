package main

import (
	"os"

	"github.com/baaaaaaaka/apkenv-launcher/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
