package main

import "github.com/tessro/printq/internal/cli"

func main() {
	cli.Execute()
}
