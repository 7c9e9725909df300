// Command cxhtml is the CLI entry point: see cmd/cxhtml/command for the
// actual subcommands.
package main

import "github.com/wikicx/lineardoc/cmd/cxhtml/command"

func main() {
	command.Execute()
}
