package main

import (
	"github.com/gingerrexayers/treehash-go/internal/treehash/commands"
	"github.com/gingerrexayers/treehash-go/internal/treehash/logging"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the top-level command, which hashes every regular
// file beneath a directory.
func NewRootCommand() *cobra.Command {
	var path string
	var opts commands.HashOptions
	var logOpts logging.Options

	cmd := &cobra.Command{
		Use:   "treehash [directory]",
		Short: "Print a content digest for every file beneath a directory.",
		Long: `Walks a directory tree depth first and prints one "<path>,<hex digest>"
line per regular file. Subdirectories that cannot be read are skipped; a file
that cannot be read stops the run unless --keep-going is set.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := path
			if len(args) > 0 {
				dir = args[0]
			}

			logger, err := logging.New(cmd.ErrOrStderr(), logOpts)
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()
			opts.Logger = logger
			return commands.Hash(dir, opts)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "The directory to scan")
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "sha256", "Digest algorithm (see 'treehash algorithms')")
	cmd.Flags().StringVar(&opts.IgnoreFile, "ignore-file", "", "A file of gitignore-style patterns to leave out of the walk")
	cmd.Flags().BoolVar(&opts.KeepGoing, "keep-going", false, "Continue past files that cannot be read and fail at the end")
	cmd.Flags().StringVar(&logOpts.Level, "log-level", "warn", "Diagnostic log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logOpts.Format, "log-format", "auto", "Diagnostic log format: auto, console, json")

	_ = cmd.RegisterFlagCompletionFunc("algorithm", algorithmCompletions)

	return cmd
}
