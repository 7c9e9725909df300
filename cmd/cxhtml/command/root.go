// Package command implements the cxhtml CLI, structured the way
// cmd/gomjml/command is: a cobra root command with one
// NewXCommand() *cobra.Command factory per subcommand.
package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command.
func Execute() {
	rootCmd := &cobra.Command{
		Use:   "cxhtml",
		Short: "Prepares MediaWiki DOM HTML for segment-by-segment machine translation",
		Long: `cxhtml flattens nested MediaWiki DOM HTML into linear, sentence-segmented
HTML suitable for driving a machine-translation service section by section.

Available Commands:
  render    Process one HTML document (stdin/file -> stdout/file)
  serve     Run the HTTP translate-prep endpoint`,
	}

	rootCmd.AddCommand(NewRenderCommand())
	rootCmd.AddCommand(NewServeCommand())

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
		NewRenderCommand().Run(cmd, args)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
