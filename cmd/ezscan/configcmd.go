package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bamsammich/ezscan/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config file location and its effective contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.Path()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.Path()
			if path == "" {
				return fmt.Errorf("cannot determine config directory")
			}
			if err := config.Save(path, config.Starter(), force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
