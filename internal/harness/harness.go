package harness

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/roach88/sruq/internal/queryer"
)

// Harness runs scenarios. The zero value discards log output.
type Harness struct {
	Logger *slog.Logger
}

// Run executes a scenario with a default harness.
func Run(scenario *Scenario) (*Result, error) {
	return (&Harness{}).Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Resolve the configuration (file or inline) and merge the overrides.
//  2. For each step, rebuild the request from its map, validate it unless
//     the step opts out, and render it.
//  3. Compare each outcome with the step's expectation.
//
// Errors are returned only when the scenario cannot be set up; step
// failures are recorded in the result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	logger := h.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg, err := scenario.loadConfiguration()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	q, err := queryer.FromConfiguration(cfg, queryer.Options{
		Overrides: scenario.Overrides,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("prepare configuration: %w", err)
	}

	result := NewResult()
	for _, step := range scenario.Steps {
		sr := runStep(q, step)
		logger.Debug("step finished", "scenario", scenario.Name, "step", step.Name, "url", sr.URL, "error", sr.Error)
		result.Steps = append(result.Steps, sr)
		for _, mismatch := range compare(step, sr) {
			result.AddError(fmt.Sprintf("step %q: %s", step.Name, mismatch))
		}
	}
	return result, nil
}

func runStep(q *queryer.Queryer, step Step) StepResult {
	out := StepResult{Name: step.Name}
	sr, err := q.SearchFromMap(step.Request)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	req, err := q.Render(sr, step.ShouldValidate())
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.URL = req.URL
	out.Authorization = req.Header.Get("Authorization")
	return out
}

// compare returns one message per unmet expectation.
func compare(step Step, got StepResult) []string {
	want := step.Expect
	if want == nil {
		return nil
	}

	if want.Error != "" {
		switch {
		case got.Error == "":
			return []string{fmt.Sprintf("expected error containing %q, got url %q", want.Error, got.URL)}
		case !strings.Contains(got.Error, want.Error):
			return []string{fmt.Sprintf("expected error containing %q, got %q", want.Error, got.Error)}
		}
		return nil
	}

	if got.Error != "" {
		return []string{fmt.Sprintf("unexpected error: %s", got.Error)}
	}

	var mismatches []string
	if want.URL != "" && want.URL != got.URL {
		mismatches = append(mismatches, fmt.Sprintf("url mismatch:\n  want %s\n  got  %s", want.URL, got.URL))
	}
	for name, value := range want.Header {
		if http.CanonicalHeaderKey(name) != "Authorization" {
			mismatches = append(mismatches, fmt.Sprintf("header %q is never set on search requests", name))
			continue
		}
		if got.Authorization != value {
			mismatches = append(mismatches, fmt.Sprintf("header %q: want %q, got %q", name, value, got.Authorization))
		}
	}
	return mismatches
}
