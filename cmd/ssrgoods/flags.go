package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/ssrgoods/internal/config"
)

// addConfigFlags registers the flags that override configuration keys.
// Flag names match config.FlagKeys.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringP("config", "c", "", "Config file (default: ./ssrgoods.{json,yaml})")
	f.String("host", "", "Host to bind to")
	f.IntP("port", "p", config.DefaultPort, "Port to listen on")
	f.StringP("endpoint", "e", config.DefaultEndpoint, "Goods data source URL")
	f.Duration("fetch-timeout", 0, "Data source timeout (0 disables)")
	f.String("title", "Goods", "Page title")
	f.String("bundle", config.DefaultBundle, "Client bundle asset name")
	f.String("static-dir", "", "Serve static assets from this directory instead of the embedded bundle")
	f.String("cache-control", "none", `Asset cache policy: "none" or "production"`)
	f.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	f.String("log-format", "auto", `Log format: "auto", "console" or "json"`)
}

// loadConfig loads configuration with cmd's flags applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(config.LoadOptions{
		ConfigFile: path,
		Flags:      cmd.Flags(),
	})
}
