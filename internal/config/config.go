// Package config provides the unified configuration struct for a
// cloudrules run.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/fetch"
)

// Output formats.
const (
	FormatText    = "text"    // one directive per line
	FormatLSRules = "lsrules" // Little Snitch JSON subscription
)

// DefaultProvider is used when neither --provider nor --url is given.
const DefaultProvider = "microsoft"

// builtinFeeds maps provider names known out of the box to their feeds.
var builtinFeeds = map[string]string{
	"microsoft": fetch.DefaultMicrosoftURL,
}

// Config holds all parsed CLI state for a cloudrules run.
type Config struct {
	Provider      string // provider name (selects a builtin or providers-file feed)
	FeedURL       string // explicit feed URL (overrides the provider's)
	ProvidersFile string // optional YAML file with additional providers

	Output    string // explicit output path ("" = derived from provider)
	OutputDir string // directory for derived output paths
	Format    string // FormatText or FormatLSRules
	Stdout    bool   // print rules instead of writing a file
	DryRun    bool   // fetch and report, but write nothing

	Action               string // "allow" or "deny"
	SplitPortsByProtocol bool

	Timeout int // feed fetch timeout in seconds
	Quiet   bool
	Verbose bool
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider == "" && c.FeedURL == "" {
		return fmt.Errorf("no provider or feed URL specified")
	}

	if c.FeedURL != "" {
		u, err := url.Parse(c.FeedURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid feed URL: %s", c.FeedURL)
		}
	}

	switch c.Format {
	case FormatText, FormatLSRules:
	default:
		return fmt.Errorf("unknown output format %q (use %s or %s)", c.Format, FormatText, FormatLSRules)
	}

	switch c.Action {
	case "allow", "deny":
	default:
		return fmt.Errorf("unknown action %q (use allow or deny)", c.Action)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %d)", c.Timeout)
	}

	return nil
}

// ResolveFeedURL returns the feed URL for the run: the explicit --url
// if given, otherwise the builtin feed for the provider name.
func (c *Config) ResolveFeedURL() (string, error) {
	if c.FeedURL != "" {
		return c.FeedURL, nil
	}
	if u, ok := builtinFeeds[c.Provider]; ok {
		return u, nil
	}
	return "", fmt.Errorf("unknown provider %q and no feed URL given", c.Provider)
}

// OutputPath returns the path the rule file is written to.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	ext := ".rules"
	if c.Format == FormatLSRules {
		ext = ".lsrules"
	}
	name := c.Provider
	if name == "" {
		name = "custom"
	}
	return filepath.Join(c.OutputDir, "cloud_rules_"+name+ext)
}
