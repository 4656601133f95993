// cloudrules converts a cloud provider's published endpoint list into a
// rule file for a desktop firewall.
package main

import (
	"fmt"
	"os"

	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/cli"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version)
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[cloudrules] Error: %v\n", err)
		os.Exit(1)
	}
}
