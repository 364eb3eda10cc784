package main

import "tagtodo/internal/cli"

func main() {
	cli.Execute()
}
