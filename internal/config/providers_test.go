package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleProviders = `providers:
  microsoft-usgov:
    url: https://endpoints.office.com/endpoints/usgovdod
    description: Microsoft 365 U.S. Government DoD
  strict-cloud:
    url: https://example.com/endpoints
    action: deny
    split_ports_by_protocol: true
`

func writeProvidersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "providers.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProviders(t *testing.T) {
	path := writeProvidersFile(t, sampleProviders)

	f, err := LoadProviders(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(f.Providers))
	}
	if f.Providers["microsoft-usgov"].URL != "https://endpoints.office.com/endpoints/usgovdod" {
		t.Errorf("url = %q", f.Providers["microsoft-usgov"].URL)
	}
}

func TestLoadProvidersMissingURL(t *testing.T) {
	path := writeProvidersFile(t, "providers:\n  broken:\n    description: no url\n")
	if _, err := LoadProviders(path); err == nil {
		t.Error("expected error for provider without url")
	}
}

func TestLoadProvidersBadYAML(t *testing.T) {
	path := writeProvidersFile(t, "providers: [not: a: map\n")
	if _, err := LoadProviders(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadProvidersMissingFile(t *testing.T) {
	if _, err := LoadProviders(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProvidersApply(t *testing.T) {
	path := writeProvidersFile(t, sampleProviders)
	f, err := LoadProviders(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	cfg.Provider = "strict-cloud"
	if !f.Apply(&cfg, "strict-cloud", Overrides{}) {
		t.Fatal("Apply returned false for a defined provider")
	}
	if cfg.FeedURL != "https://example.com/endpoints" {
		t.Errorf("FeedURL = %q", cfg.FeedURL)
	}
	if cfg.Action != "deny" {
		t.Errorf("Action = %q, want deny", cfg.Action)
	}
	if !cfg.SplitPortsByProtocol {
		t.Error("SplitPortsByProtocol not applied")
	}
}

func TestProvidersApplyKeepsExplicitValues(t *testing.T) {
	path := writeProvidersFile(t, sampleProviders)
	f, err := LoadProviders(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	cfg.Provider = "strict-cloud"
	cfg.FeedURL = "https://override.example.com/feed"
	f.Apply(&cfg, "strict-cloud", Overrides{})
	if cfg.FeedURL != "https://override.example.com/feed" {
		t.Errorf("explicit URL was overwritten: %q", cfg.FeedURL)
	}
}

func TestProvidersApplyExplicitFlagsWin(t *testing.T) {
	// An explicitly chosen value must survive even when it equals the
	// flag's default.
	path := writeProvidersFile(t, sampleProviders)
	f, err := LoadProviders(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	cfg.Provider = "strict-cloud"
	cfg.Action = "allow"
	f.Apply(&cfg, "strict-cloud", Overrides{Action: true, SplitPortsByProtocol: true})
	if cfg.Action != "allow" {
		t.Errorf("explicit --action allow was overridden to %q", cfg.Action)
	}
	if cfg.SplitPortsByProtocol {
		t.Error("explicit split setting was overridden by the provider spec")
	}
}

func TestProvidersApplyUnknown(t *testing.T) {
	path := writeProvidersFile(t, sampleProviders)
	f, err := LoadProviders(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	if f.Apply(&cfg, "unknown", Overrides{}) {
		t.Error("Apply returned true for an undefined provider")
	}
}
