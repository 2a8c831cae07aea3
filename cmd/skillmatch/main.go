// skillmatch matches bench employees against open demands and
// sub-contractor profiles from the command line.
package main

import (
	"os"

	"github.com/skillmatch/backend/cmd/skillmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
