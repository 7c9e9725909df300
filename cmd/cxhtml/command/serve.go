package command

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wikicx/lineardoc"
	"github.com/wikicx/lineardoc/internal/config"
	"github.com/wikicx/lineardoc/internal/httpapi"
	"github.com/wikicx/lineardoc/internal/segment"
)

// NewServeCommand creates the serve command: it loads .env the way
// examples/sendmail/sendmail.go does (`_ = godotenv.Load()`), then reads
// PORT/CX_CONFIG from the environment before starting the HTTP endpoint
// that restores the original Flask app's /textp and /health routes.
func NewServeCommand() *cobra.Command {
	var isolateSegment bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP translate-prep endpoint",
		Long: `Starts an HTTP server exposing POST /v1/translate-prep and GET /healthz.

Reads configuration from the environment (and an optional .env file):
  PORT        listen port, default 8000
  CX_CONFIG   path to a removable-sections YAML config, optional`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()

			port := os.Getenv("PORT")
			if port == "" {
				port = "8000"
			}

			removable := lineardoc.RemovableConfig{}
			if configPath := os.Getenv("CX_CONFIG"); configPath != "" {
				var err error
				removable, err = config.Load(configPath)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading CX_CONFIG: %v\n", err)
					os.Exit(1)
				}
			}

			server := &httpapi.Server{
				Removable:       removable,
				Segmenter:       segment.PunctuationSegmenter,
				IsolateSegments: isolateSegment,
			}

			addr := ":" + port
			fmt.Printf("cxhtml serve: listening on %s\n", addr)
			if err := http.ListenAndServe(addr, server.Router()); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVar(&isolateSegment, "isolate-segments", false, "isolate cx-segment spans already in the input into their own blocks (the wrapper is not rendered)")

	return cmd
}
