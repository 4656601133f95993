package endpoint

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantNorm string
	}{
		{"literal host", "outlook.office365.com", Literal, "outlook.office365.com"},
		{"literal uppercase", "Outlook.Office365.COM", Literal, "outlook.office365.com"},
		{"literal with hyphen", "smtp-mail.outlook.com", Literal, "smtp-mail.outlook.com"},
		{"literal with underscore", "_sipfederationtls.example.com", Literal, ""},
		{"leading wildcard", "*.office.com", LeadingWildcard, "*.office.com"},
		{"leading wildcard uppercase", "*.Office.COM", LeadingWildcard, "*.office.com"},
		{"mid-string wildcard", "autodiscover.*.onmicrosoft.com", Unsupported, ""},
		{"trailing wildcard", "office.*", Unsupported, ""},
		{"multiple wildcards", "*.*.office.com", Unsupported, ""},
		{"bare asterisk", "*", Unsupported, ""},
		{"bare wildcard anchor", "*.", Unsupported, ""},
		{"wildcard without dot", "*office.com", Unsupported, ""},
		{"empty", "", Unsupported, ""},
		{"trailing dot", "office.com.", Unsupported, ""},
		{"empty label", "office..com", Unsupported, ""},
		{"leading dot", ".office.com", Unsupported, ""},
		{"space in host", "off ice.com", Unsupported, ""},
		{"wildcard with trailing dot", "*.office.com.", Unsupported, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.input)
			if c.Kind != tt.wantKind {
				t.Fatalf("Classify(%q): got kind %d, want %d (reason %q)", tt.input, c.Kind, tt.wantKind, c.Reason)
			}
			if tt.wantNorm != "" && c.Normalized != tt.wantNorm {
				t.Errorf("Classify(%q): got normalized %q, want %q", tt.input, c.Normalized, tt.wantNorm)
			}
			if c.Kind == Unsupported && c.Reason == "" {
				t.Errorf("Classify(%q): unsupported pattern has no reason", tt.input)
			}
		})
	}
}

func TestClassifyWildcardDomain(t *testing.T) {
	c := Classify("*.sharepoint.com")
	if c.Kind != LeadingWildcard {
		t.Fatalf("expected leading wildcard, got %d (%s)", c.Kind, c.Reason)
	}
	if c.Domain != "sharepoint.com" {
		t.Errorf("Domain = %q, want %q", c.Domain, "sharepoint.com")
	}
	if c.Normalized != "*.sharepoint.com" {
		t.Errorf("Normalized = %q, want %q", c.Normalized, "*.sharepoint.com")
	}
}

func TestClassifyLiteralHasNoDomain(t *testing.T) {
	c := Classify("login.microsoftonline.com")
	if c.Domain != "" {
		t.Errorf("literal classification should not set Domain, got %q", c.Domain)
	}
}
