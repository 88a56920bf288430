package main

import "promptctl/internal/cli"

func main() {
	cli.Execute()
}
