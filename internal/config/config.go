package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sheets.yaml
var sheetsYAML []byte

// SheetSpec describes one sheet of the source spreadsheet: the range to
// fetch and the baseline headers the parser validates against.
type SheetSpec struct {
	Name    string   `yaml:"name"`
	Range   string   `yaml:"range"`
	Headers []string `yaml:"headers"`
}

// SheetSchema is the full layout of the source spreadsheet.
type SheetSchema struct {
	TruthyToken   string    `yaml:"truthy_token"`
	Addresses     SheetSpec `yaml:"addresses"`
	Distributions SheetSpec `yaml:"distributions"`
	Purchases     SheetSpec `yaml:"purchases"`
}

// Config holds everything the server needs at startup. The access token
// is NOT part of config; it arrives per request from the caller.
type Config struct {
	Port          string
	SpreadsheetID string
	SheetsBaseURL string
	CORSOrigins   []string
	Schema        SheetSchema
}

// LoadSchema returns the sheet layout, from SHEETS_SCHEMA_FILE if set,
// otherwise the embedded default.
func LoadSchema() (SheetSchema, error) {
	raw := sheetsYAML
	if path := os.Getenv("SHEETS_SCHEMA_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return SheetSchema{}, fmt.Errorf("reading sheet schema %s: %w", path, err)
		}
		raw = data
	}

	var schema SheetSchema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return SheetSchema{}, fmt.Errorf("parsing sheet schema: %w", err)
	}
	if schema.TruthyToken == "" {
		schema.TruthyToken = "TRUE"
	}
	for _, s := range []SheetSpec{schema.Addresses, schema.Distributions, schema.Purchases} {
		if s.Range == "" {
			return SheetSchema{}, fmt.Errorf("sheet schema: missing range for sheet %q", s.Name)
		}
	}
	return schema, nil
}

// Load reads server configuration from the environment.
func Load() (Config, error) {
	schema, err := LoadSchema()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:          os.Getenv("PORT"),
		SpreadsheetID: os.Getenv("SPREADSHEET_ID"),
		SheetsBaseURL: os.Getenv("SHEETS_BASE_URL"),
		Schema:        schema,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SpreadsheetID == "" {
		return Config{}, fmt.Errorf("SPREADSHEET_ID is required")
	}

	cfg.CORSOrigins = []string{"http://localhost:3000"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}
