package harness

// StepResult is what one step produced.
type StepResult struct {
	Name string `json:"name"`

	// URL is the rendered URL; empty when the step failed.
	URL string `json:"url,omitempty"`

	// Authorization is the rendered Authorization header, if any.
	Authorization string `json:"authorization,omitempty"`

	// Error is the failure message; empty when the step rendered.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation matched.
	Pass bool `json:"pass"`

	Steps []StepResult `json:"steps"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
