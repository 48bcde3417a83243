package main

import (
	"github.com/gingerrexayers/treehash-go/internal/treehash/commands"
	"github.com/spf13/cobra"
)

// NewChunksCommand creates the 'chunks' command for the CLI.
func NewChunksCommand() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "chunks <file>",
		Short: "Split a file into content-defined chunks and digest each one.",
		Long: `Splits a file with Rabin fingerprinting (4-16KB chunks) and prints
"<offset>,<size>,<hex digest>" per chunk. Chunks shared between files point at
partial duplicates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Chunks(args[0], algorithm, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "sha256", "Digest algorithm")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", algorithmCompletions)

	return cmd
}
