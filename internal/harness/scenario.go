package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sruq/internal/config"
)

// Scenario is a sequence of request-building steps against one
// configuration.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Configuration is a snapshot file path, relative to the scenario file.
	Configuration string `yaml:"configuration,omitempty"`

	// InlineConfiguration is a snapshot in map form.
	InlineConfiguration map[string]any `yaml:"inline_configuration,omitempty"`

	// Overrides are merged into the configuration before any step runs.
	Overrides config.Overrides `yaml:"overrides,omitempty"`

	Steps []Step `yaml:"steps"`

	// dir is the directory of the scenario file, for resolving
	// Configuration.
	dir string
}

// Step builds one searchRetrieve request.
type Step struct {
	Name string `yaml:"name"`

	// Request is the request in map form (cql_query, sort_queries, ...).
	Request map[string]any `yaml:"request"`

	// Validate defaults to true.
	Validate *bool `yaml:"validate,omitempty"`

	Expect *Expectation `yaml:"expect,omitempty"`
}

// ShouldValidate reports whether the request is validated before
// rendering.
func (s Step) ShouldValidate() bool {
	return s.Validate == nil || *s.Validate
}

// Expectation describes the expected outcome of a step.
type Expectation struct {
	// URL is the exact rendered URL.
	URL string `yaml:"url,omitempty"`

	// Error is a substring of the expected failure. A step with an Error
	// expectation fails if it renders.
	Error string `yaml:"error,omitempty"`

	// Header entries must be present on the rendered request.
	Header map[string]string `yaml:"header,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	scenario.dir = filepath.Dir(path)

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
	switch {
	case s.Configuration == "" && s.InlineConfiguration == nil:
		return fmt.Errorf("configuration or inline_configuration is required")
	case s.Configuration != "" && s.InlineConfiguration != nil:
		return fmt.Errorf("configuration and inline_configuration are mutually exclusive")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if step.Request == nil {
			return fmt.Errorf("step %d (%s): request is required", i, step.Name)
		}
		if e := step.Expect; e != nil && e.Error != "" && (e.URL != "" || len(e.Header) > 0) {
			return fmt.Errorf("step %d (%s): expect.error cannot be combined with url or header", i, step.Name)
		}
	}
	return nil
}

// loadConfiguration resolves the scenario's configuration.
func (s *Scenario) loadConfiguration() (*config.Configuration, error) {
	if s.InlineConfiguration != nil {
		if err := config.CheckDocument(s.InlineConfiguration); err != nil {
			return nil, fmt.Errorf("inline configuration: %w", err)
		}
		return config.FromMap(s.InlineConfiguration)
	}
	path := s.Configuration
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	return config.LoadFile(path)
}
