// Command freight-rate is a thin CLI wrapper around the rating
// engine, for local quoting against a configuration snapshot.
package main

import (
	"os"

	"freight-rate/cmd/cli/cmd"
	"freight-rate/internal/logging"
)

func main() {
	defer logging.Sync()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
