package cli

import (
	"github.com/spf13/cobra"

	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/config"
)

// AddFlags registers all cloudrules flags on the root command and binds
// them to the config struct.
func AddFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()

	f.StringVar(&cfg.Provider, "provider", config.DefaultProvider, "provider name (builtin or from --providers-file)")
	f.StringVar(&cfg.FeedURL, "url", "", "endpoint feed URL (overrides the provider's)")
	f.StringVar(&cfg.ProvidersFile, "providers-file", "", "YAML file defining additional providers")

	f.StringVarP(&cfg.Output, "output", "o", "", "output file path (default derived from provider)")
	f.StringVar(&cfg.OutputDir, "output-dir", "rules", "directory for derived output paths")
	f.StringVar(&cfg.Format, "format", config.FormatLSRules, "output format: text or lsrules")
	f.BoolVar(&cfg.Stdout, "stdout", false, "print rules to stdout instead of writing a file")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "fetch and report skipped entries without writing the rule file")

	f.StringVar(&cfg.Action, "action", "allow", "rule action: allow or deny")
	f.BoolVar(&cfg.SplitPortsByProtocol, "split-ports-by-protocol", false,
		"emit separate TCP and UDP entries for ports without an explicit protocol")

	f.IntVar(&cfg.Timeout, "timeout", 10, "feed fetch timeout in seconds")
	f.BoolVarP(&cfg.Quiet, "quiet", "q", false, "suppress informational output")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug output")
}
