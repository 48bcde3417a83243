package main

import (
	"fmt"

	"github.com/gingerrexayers/treehash-go/internal/treehash/lib"
	"github.com/spf13/cobra"
)

// algorithmCompletions provides tab completion for the --algorithm flag.
func algorithmCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var suggestions []string
	for _, a := range lib.Algorithms() {
		suggestions = append(suggestions, fmt.Sprintf("%s\t%d-bit digest", a.Name, a.Size*8))
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
