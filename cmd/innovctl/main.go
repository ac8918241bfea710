// Command innovctl is the operator CLI for the country-innovation service.
package main

import (
	"os"

	"github.com/innovatlas/country-innovation/internal/interfaces/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
