package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := newScanOptions()

	rootCmd := &cobra.Command{
		Use:   "ezscan [flags] <source> [destination]",
		Short: "Scan a directory tree and list files matching a DOS-style wildcard",
		Long: `ezscan walks a directory tree, matches every file name against an
8.3-style wildcard pattern (default *.*) and lists what matched.

With a destination, each listed file is shown with its mirrored path under
the destination root; --mkdirs also recreates the source's directory shape
there. Remote roots use the form [user@]host:/path and are scanned over SFTP.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return nil
			}
			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "ezscan %s\n", version)
				return nil
			}
			return runScan(cmd, opts, args)
		},
	}

	opts.register(rootCmd)

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newOverlapCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDocsCmd())

	return rootCmd
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
