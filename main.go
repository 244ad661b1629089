package main

import "projdeck/internal/cli"

func main() {
	cli.Execute()
}
