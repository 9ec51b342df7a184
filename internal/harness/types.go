package harness

// CaseResult is what one query actually produced.
type CaseResult struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`

	// Count is len(Results); zero for failed queries.
	Count   int      `json:"count"`
	Results []string `json:"results,omitempty"`

	// Error is the error kind of a failed query, Context the offending
	// text and Message the localized rendering.
	Error   string `json:"error,omitempty"`
	Context string `json:"context,omitempty"`
	Message string `json:"message,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every case matched its expectations.
	Pass bool `json:"pass"`

	// Cases holds one entry per scenario case, in order.
	// Used for golden comparison.
	Cases []CaseResult `json:"cases"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCase records the outcome of one case.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
}
