package main

import (
	"github.com/dropsim/dropctl/pkg/cli"
)

func main() {
	cli.Execute()
}
