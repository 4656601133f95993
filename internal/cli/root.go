// Package cli provides the root command and main execution flow for
// cloudrules.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/config"
	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/fetch"
	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/logging"
	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/rules"
)

// NewRootCmd creates the root command for cloudrules.
func NewRootCmd(version ...string) *cobra.Command {
	ver := "dev"
	if len(version) > 0 && version[0] != "" {
		ver = version[0]
	}
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "cloudrules [OPTIONS]",
		Short: "Generate desktop firewall rules from cloud provider endpoint feeds",
		Long: `cloudrules fetches a cloud provider's published endpoint list
(hostnames, wildcard domains, IP ranges, ports) and converts it into a
rule file for a desktop firewall.

Output formats:
  text     one directive per line: <action> <host|domain|net> <target> <proto> <port>
  lsrules  Little Snitch rule-group subscription (JSON)

Entries the rule syntax cannot express (mid-string wildcards, malformed
CIDRs) are skipped and reported on stderr; they never abort the run.

Example:
  cloudrules --provider microsoft --format lsrules
  cloudrules --url https://endpoints.office.com/endpoints/worldwide --stdout`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := config.Overrides{
				Action:               cmd.Flags().Changed("action"),
				SplitPortsByProtocol: cmd.Flags().Changed("split-ports-by-protocol"),
			}
			return runGenerate(cfg, explicit)
		},
	}

	AddFlags(cmd, cfg)

	cmd.AddCommand(NewVersionCmd(ver))
	cmd.AddCommand(NewCompletionCmd())

	return cmd
}

func runGenerate(cfg *config.Config, explicit config.Overrides) error {
	logger := logging.NewStderrLogger(cfg.Quiet, cfg.Verbose)

	// Merge providers file before validating, so a file-defined provider
	// passes validation.
	if cfg.ProvidersFile != "" {
		providers, err := config.LoadProviders(cfg.ProvidersFile)
		if err != nil {
			return err
		}
		if providers.Apply(cfg, cfg.Provider, explicit) {
			logger.Debug("Provider %q resolved from %s", cfg.Provider, cfg.ProvidersFile)
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	feedURL, err := cfg.ResolveFeedURL()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
	defer cancel()

	logger.Info("Fetching endpoint feed from %s", feedURL)
	client := fetch.NewClient(feedURL, time.Duration(cfg.Timeout)*time.Second)
	records, err := client.Fetch(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Feed returned %d records", len(records))

	entries, report := rules.Normalize(records, rules.Options{
		Action:               rules.Action(cfg.Action),
		SplitPortsByProtocol: cfg.SplitPortsByProtocol,
	})

	for _, s := range report.Skipped {
		logger.Warn("Skipping %s: %s", s.Target, s.Reason)
	}

	var data []byte
	switch cfg.Format {
	case config.FormatText:
		text, err := rules.EmitText(entries)
		if err != nil {
			return err
		}
		data = []byte(text)
	case config.FormatLSRules:
		name := providerTitle(cfg.Provider) + " Cloud Access"
		desc := fmt.Sprintf("Allows outbound traffic to %s cloud services.", providerTitle(cfg.Provider))
		if cfg.Action == "deny" {
			desc = fmt.Sprintf("Denies outbound traffic to %s cloud services.", providerTitle(cfg.Provider))
		}
		data, err = rules.EmitLSRules(entries, name, desc)
		if err != nil {
			return err
		}
	}

	switch {
	case cfg.DryRun:
		logger.Info("Dry run: would write %d rules to %s", len(entries), cfg.OutputPath())
	case cfg.Stdout:
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing rules to stdout: %w", err)
		}
	default:
		path := cfg.OutputPath()
		if err := rules.WriteFile(path, data); err != nil {
			return err
		}
		logger.Info("Rule file written: %s", path)
	}

	logger.RunSummary(logging.Summary{
		Records:    len(records),
		Rules:      len(entries),
		Duplicates: report.Duplicates,
		Skipped:    len(report.Skipped),
	})

	return nil
}

// providerTitle upper-cases the first letter of a provider name for use
// in subscription titles.
func providerTitle(name string) string {
	if name == "" {
		return "Cloud"
	}
	if name[0] >= 'a' && name[0] <= 'z' {
		return string(name[0]-'a'+'A') + name[1:]
	}
	return name
}
