package config

import (
	"testing"
)

func TestLoadSchemaEmbeddedDefault(t *testing.T) {
	schema, err := LoadSchema()
	if err != nil {
		t.Fatal(err)
	}

	if schema.TruthyToken != "TRUE" {
		t.Errorf("unexpected truthy token %q", schema.TruthyToken)
	}
	if schema.Addresses.Range != "Addresses!A:N" {
		t.Errorf("unexpected addresses range %q", schema.Addresses.Range)
	}
	if len(schema.Addresses.Headers) != 11 {
		t.Errorf("expected 11 address headers, got %d", len(schema.Addresses.Headers))
	}
	if schema.Distributions.Headers[1] != "Distribution Site" {
		t.Errorf("unexpected distributions headers: %v", schema.Distributions.Headers)
	}
	if schema.Purchases.Name != "Purchases" {
		t.Errorf("unexpected purchases sheet name %q", schema.Purchases.Name)
	}
}

func TestLoadRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without SPREADSHEET_ID")
	}
}

func TestLoadDefaultsAndOrigins(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "abc123")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "https://map.example.org, https://staging.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.SpreadsheetID != "abc123" {
		t.Errorf("unexpected spreadsheet id %q", cfg.SpreadsheetID)
	}
	if len(cfg.CORSOrigins) != 3 {
		t.Errorf("expected localhost plus 2 extra origins, got %v", cfg.CORSOrigins)
	}
}
