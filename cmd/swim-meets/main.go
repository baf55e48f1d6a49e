package main

import "github.com/openswim/swim-meets/internal/cli"

func main() {
	cli.Execute()
}
