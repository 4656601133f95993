package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderSpec describes one provider feed in a providers file.
type ProviderSpec struct {
	URL                  string `yaml:"url"`
	Description          string `yaml:"description"`
	Action               string `yaml:"action"`
	SplitPortsByProtocol *bool  `yaml:"split_ports_by_protocol"`
}

// ProvidersFile is the on-disk YAML document mapping provider names to
// feeds, for providers beyond the builtin ones:
//
//	providers:
//	  microsoft-usgov:
//	    url: https://endpoints.office.com/endpoints/usgovdod
//	    description: Microsoft 365 U.S. Government DoD
type ProvidersFile struct {
	Providers map[string]ProviderSpec `yaml:"providers"`
}

// LoadProviders reads and parses a providers file.
func LoadProviders(path string) (*ProvidersFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading providers file %q: %w", path, err)
	}

	var f ProvidersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing providers file %q: %w", path, err)
	}

	for name, spec := range f.Providers {
		if spec.URL == "" {
			return nil, fmt.Errorf("provider %q has no url", name)
		}
	}

	return &f, nil
}

// Overrides records which config fields the user set explicitly on the
// command line. A provider spec never replaces an explicit value, even
// one that matches the flag's default.
type Overrides struct {
	Action               bool
	SplitPortsByProtocol bool
}

// Apply merges the named provider's spec into the config. Explicit CLI
// values win; everything else is filled in from the spec. Returns false
// when the file does not define the provider.
func (f *ProvidersFile) Apply(c *Config, name string, explicit Overrides) bool {
	spec, ok := f.Providers[name]
	if !ok {
		return false
	}
	if c.FeedURL == "" {
		c.FeedURL = spec.URL
	}
	if spec.Action != "" && !explicit.Action {
		c.Action = spec.Action
	}
	if spec.SplitPortsByProtocol != nil && !explicit.SplitPortsByProtocol {
		c.SplitPortsByProtocol = *spec.SplitPortsByProtocol
	}
	return true
}
