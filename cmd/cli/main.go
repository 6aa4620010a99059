// Package main is the entry point for the mesh CLI binary.
package main

import (
	"os"

	cli "mesh-demo/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
