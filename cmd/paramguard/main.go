package main

import (
	"os"

	"github.com/tkingovr/param-guard/cmd/paramguard/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
