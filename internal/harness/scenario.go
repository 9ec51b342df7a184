package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/leonfyr/jisho/internal/i18n"
	"github.com/leonfyr/jisho/internal/ir"
)

// Scenario is a named set of queries run against one dictionary.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Language selects the message catalog for rendered errors.
	// Defaults to i18n.DefaultLanguage.
	Language string `yaml:"language,omitempty"`

	// TimeLimitSeconds is the per-query budget. Zero uses the search default.
	TimeLimitSeconds float64 `yaml:"time_limit_seconds,omitempty"`

	// Dictionary is the word list the cases query.
	Dictionary DictionarySource `yaml:"dictionary"`

	// Cases are run in order against a single Searcher, so later cases
	// may be answered from the cache.
	Cases []Case `yaml:"cases"`
}

// DictionarySource gives the words inline or as a file. Exactly one of
// Words and Path is set.
type DictionarySource struct {
	Words []string `yaml:"words,omitempty"`

	// Path is resolved relative to the scenario file.
	Path     string `yaml:"path,omitempty"`
	Encoding string `yaml:"encoding,omitempty"`
}

// Case is one query and its expected outcome.
type Case struct {
	Query string `yaml:"query"`

	// Limit caps the results. Zero uses the search default.
	Limit int `yaml:"limit,omitempty"`

	// Expect is the exact, ordered result list.
	Expect []string `yaml:"expect,omitempty"`

	// Contains lists results that must appear, in any order.
	Contains []string `yaml:"contains,omitempty"`

	// Count is the expected number of results.
	Count *int `yaml:"count,omitempty"`

	// Error is the expected failure. It excludes the result expectations.
	Error *ExpectedError `yaml:"error,omitempty"`
}

// ExpectedError describes a query that must fail.
type ExpectedError struct {
	Kind string `yaml:"kind"`

	// Context, when set, must equal the error context exactly.
	Context string `yaml:"context,omitempty"`

	// Message, when set, must equal the localized rendering.
	Message string `yaml:"message,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the dictionary path BEFORE validation.
	if p := scenario.Dictionary.Path; p != "" && !filepath.IsAbs(p) {
		scenario.Dictionary.Path = filepath.Join(filepath.Dir(path), p)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Language != "" && !slices.Contains(i18n.Languages, s.Language) {
		return fmt.Errorf("language %q is not supported", s.Language)
	}

	if s.TimeLimitSeconds < 0 {
		return fmt.Errorf("time_limit_seconds must not be negative")
	}

	hasWords := len(s.Dictionary.Words) > 0
	hasPath := s.Dictionary.Path != ""
	switch {
	case hasWords && hasPath:
		return fmt.Errorf("dictionary: words and path are mutually exclusive")
	case !hasWords && !hasPath:
		return fmt.Errorf("dictionary: words or path is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if err := validateCase(c); err != nil {
			return fmt.Errorf("cases[%d]: %w", i, err)
		}
	}

	return nil
}

func validateCase(c Case) error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	hasResults := c.Expect != nil || c.Contains != nil || c.Count != nil
	if c.Error == nil {
		if !hasResults {
			return fmt.Errorf("one of expect, contains, count or error is required")
		}
		return nil
	}

	if hasResults {
		return fmt.Errorf("error cannot be combined with result expectations")
	}
	if !slices.Contains(ir.Kinds, ir.ErrorKind(c.Error.Kind)) {
		return fmt.Errorf("unknown error kind %q", c.Error.Kind)
	}
	return nil
}
