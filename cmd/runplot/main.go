package main

import "github.com/mchmarny/sigplot/pkg/cli"

func main() {
	cli.ExecuteRuns()
}
