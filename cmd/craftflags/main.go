package main

import "github.com/jwebster45206/craft-flags/internal/cli"

func main() {
	cli.Execute()
}
