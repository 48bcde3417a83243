package main

import (
	"github.com/gingerrexayers/treehash-go/internal/treehash/commands"
	"github.com/spf13/cobra"
)

func NewAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the supported digest algorithms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Algorithms(cmd.OutOrStdout())
		},
	}
}
