package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a result as the text stored in golden files:
//
//	scenario: <name>
//	step: <step name>
//	  url: <url>
//	  authorization: <header>
//	step: <step name>
//	  error: <message>
func Transcript(scenarioName string, result *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", scenarioName)
	for _, s := range result.Steps {
		fmt.Fprintf(&buf, "step: %s\n", s.Name)
		if s.Error != "" {
			fmt.Fprintf(&buf, "  error: %s\n", s.Error)
			continue
		}
		fmt.Fprintf(&buf, "  url: %s\n", s.URL)
		if s.Authorization != "" {
			fmt.Fprintf(&buf, "  authorization: %s\n", s.Authorization)
		}
	}
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check expectations; returns an
// error if the scenario could not be set up.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Transcript(scenarioName, result))
}
