package main

import (
	"github.com/hurbes/gita-tui/internal/cli"
)

func main() {
	cli.Execute()
}
