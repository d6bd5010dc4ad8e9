package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/ssrgoods/internal/logging"
)

func renderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page once and print it",
		Long: `Fetch the goods list once and write the rendered page document.

Nothing is written when the fetch or the render fails.

Examples:
  ssrgoods render
  ssrgoods render -o index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := contextOrBackground(cmd)

			srv, err := newServer(ctx, cfg, logging.Nop)
			if err != nil {
				return err
			}
			page, err := srv.Render(ctx)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(output, page, 0o644); err != nil {
				return err
			}
			success("Wrote %s (%d bytes)", output, len(page))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the page to a file instead of stdout")

	return cmd
}
