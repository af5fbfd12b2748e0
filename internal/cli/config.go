package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkealoha/budgetparse/internal/parser"
)

// Config holds run configuration loaded from a YAML file. Everything
// is optional; zero values fall back to parser defaults.
type Config struct {
	// FirstFiscalYear is the fiscal year of the first amount column.
	FirstFiscalYear int `yaml:"first_fiscal_year"`

	// Departments maps department codes to display names, overriding
	// names read from document headers.
	Departments map[string]string `yaml:"departments"`

	// Categories maps department header letters (A-K) to category
	// names, overriding the built-in set.
	Categories map[string]string `yaml:"categories"`
}

// LoadConfig reads a YAML config file. An empty path returns the zero
// Config, which means "all defaults".
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParserOptions converts the config into parser options.
func (c Config) ParserOptions() parser.Options {
	return parser.Options{
		FirstFiscalYear: c.FirstFiscalYear,
		Departments:     c.Departments,
		Categories:      c.Categories,
	}
}
