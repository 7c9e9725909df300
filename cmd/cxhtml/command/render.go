package command

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wikicx/lineardoc"
	"github.com/wikicx/lineardoc/internal/config"
	"github.com/wikicx/lineardoc/internal/segment"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var (
		outputFile     string
		language       string
		configPath     string
		isolateSegment bool
	)

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Process a single HTML document into segmented HTML",
		Long: `Reads MediaWiki DOM HTML (from a file argument or stdin) and writes
segmented, section-wrapped, link-id-stamped HTML (to a file or stdout).

Examples:
  cxhtml render page.html -o prepared.html
  cat page.html | cxhtml render --lang fr`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var source []byte
			var err error
			if len(args) == 1 {
				source, err = os.ReadFile(args[0])
			} else {
				source, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
				os.Exit(1)
			}

			removable := lineardoc.RemovableConfig{}
			if configPath != "" {
				removable, err = config.Load(configPath)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
					os.Exit(1)
				}
			}

			result, err := lineardoc.Process(string(source), lineardoc.ProcessOptions{
				Language:        language,
				Removable:       removable,
				Segmenter:       segment.PunctuationSegmenter,
				IsolateSegments: isolateSegment,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error processing HTML: %v\n", err)
				os.Exit(1)
			}

			if outputFile != "" {
				if err := os.WriteFile(outputFile, []byte(result), 0o644); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
					os.Exit(1)
				}
			} else {
				fmt.Print(result)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&language, "lang", "en", "language code passed to the segmenter")
	cmd.Flags().StringVar(&configPath, "config", "", "path to removable-sections YAML config")
	cmd.Flags().BoolVar(&isolateSegment, "isolate-segments", false, "isolate cx-segment spans already in the input into their own blocks (the wrapper is not rendered)")

	return cmd
}
