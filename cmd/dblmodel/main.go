// Package main provides the dblmodel CLI.
package main

import "github.com/mesh-intelligence/dblmodel/internal/cli"

func main() {
	cli.Execute()
}
