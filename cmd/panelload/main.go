package main

import (
	"context"
	"fmt"
	"os"

	"github.com/buildstock/panelload/pkg/interfaces/cli/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
