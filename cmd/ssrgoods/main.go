// Command ssrgoods serves the server-rendered goods list.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/ssrgoods/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if _, ok := errors.As(err); !ok {
			err = errors.New(errors.CodeCommandFailed).Wrap(err)
		}
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ssrgoods",
		Short: "Server-rendered goods list",
		Long: `ssrgoods renders a goods list on the server.

Each page request fetches {"data":{"list":[...]}} from the data source,
renders one <li> per item and embeds the list for the client bundle,
which refreshes it once over the live channel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addConfigFlags(rootCmd)

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		configCmd(),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}
