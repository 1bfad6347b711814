package main

import "github.com/turtacn/gdmrisk/cmd/cli"

func main() {
	cli.Execute()
}
