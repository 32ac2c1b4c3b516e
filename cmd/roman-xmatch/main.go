// Command roman-xmatch cross-matches astronomical catalogs against the
// footprints of the Roman Space Telescope core community surveys.
package main

import (
	"os"

	"github.com/pmarcum/roman-xmatch/internal/cli"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
