// Command hrdesk is the entry point for the HR desk assistant.
// It provides a CLI interface (via Cobra) and an HTTP server with a web UI
// that answers employee HR questions from a curated FAQ dataset.
package main

import (
	"fmt"
	"os"

	"github.com/hrdesk/hrdesk-go/cmd/hrdesk/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
