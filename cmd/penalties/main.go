package main

import "github.com/mcoot/penalties-go/internal/cli"

func main() {
	cli.Execute()
}
