package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as YAML after applying the config
file, .env files, SSR_* environment variables and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if path := cfg.Path(); path != "" {
				fmt.Fprintf(out, "# %s\n", path)
			} else {
				warn("no config file found, showing defaults")
			}
			_, err = out.Write(data)
			return err
		},
	}
}
