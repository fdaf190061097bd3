package main

import "github.com/forPelevin/mediactl/internal/cli"

func main() {
	cli.Main()
}
