package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd := NewRootCommand()

	// Add commands
	rootCmd.AddCommand(NewAlgorithmsCommand())
	rootCmd.AddCommand(NewChunksCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
