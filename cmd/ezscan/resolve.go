package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bamsammich/ezscan/internal/fsys"
	"github.com/bamsammich/ezscan/internal/mirror"
	"github.com/bamsammich/ezscan/internal/pathres"
)

func newResolveCmd() *cobra.Command {
	var asDir bool
	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Print the canonical absolute form of each path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := fsys.NewLocal()
			resolve := pathres.Resolve
			if asDir {
				resolve = pathres.ResolveDir
			}

			failed := false
			for _, arg := range args {
				p, err := resolve(arg, fs.Getwd)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", arg, err)
					failed = true
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if failed {
				return &exitError{code: 2}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asDir, "dir", "d", false, "terminate each result with a slash")
	return cmd
}

func newOverlapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overlap <source> <destination>",
		Short: "Report whether destination lies inside source",
		Long: `overlap resolves both paths and reports whether the destination is the
source or lies beneath it, the configuration a scan with --mkdirs refuses.
Exits 1 when the pair is unsafe.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := fsys.NewLocal()
			overlaps, err := mirror.CheckOverlap(args[0], args[1], fs.Getwd)
			if err != nil {
				var pe *pathres.PathError
				if errors.As(err, &pe) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					return &exitError{code: 2}
				}
				return err
			}
			if overlaps {
				fmt.Fprintf(cmd.OutOrStdout(), "unsafe: %s is within %s\n", args[1], args[0])
				return &exitError{code: 1}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "safe")
			return nil
		},
	}
}
