package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when a case does not match its expectations.
// It includes the query and full result list to help debug the failure.
type AssertionError struct {
	Index    int
	Query    string
	Expected string
	Actual   string
	Results  []string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "case[%d] %q failed\n", e.Index, e.Query)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if len(e.Results) > 0 {
		fmt.Fprintf(&buf, "  Results: %s\n", strings.Join(e.Results, " "))
	}

	return buf.String()
}

// checkCase compares one CaseResult with its Case. Each failed
// expectation yields one error.
func checkCase(i int, c Case, got CaseResult) []error {
	fail := func(expected, actual string) error {
		return &AssertionError{
			Index:    i,
			Query:    c.Query,
			Expected: expected,
			Actual:   actual,
			Results:  got.Results,
		}
	}

	if c.Error != nil {
		return checkError(c.Error, got, fail)
	}
	if got.Error != "" {
		return []error{fail("success", "error "+got.Message)}
	}

	var errs []error
	if c.Expect != nil && !slices.Equal(c.Expect, got.Results) {
		errs = append(errs, fail(formatList(c.Expect), formatList(got.Results)))
	}
	for _, w := range c.Contains {
		if !slices.Contains(got.Results, w) {
			errs = append(errs, fail("results containing "+w, formatList(got.Results)))
		}
	}
	if c.Count != nil && *c.Count != got.Count {
		errs = append(errs, fail(fmt.Sprintf("%d results", *c.Count), fmt.Sprintf("%d results", got.Count)))
	}
	return errs
}

func checkError(want *ExpectedError, got CaseResult, fail func(string, string) error) []error {
	if got.Error == "" {
		return []error{fail("error "+want.Kind, fmt.Sprintf("%d results", got.Count))}
	}

	var errs []error
	if got.Error != want.Kind {
		errs = append(errs, fail("error "+want.Kind, "error "+got.Error))
	}
	if want.Context != "" && want.Context != got.Context {
		errs = append(errs, fail("context "+want.Context, "context "+got.Context))
	}
	if want.Message != "" && want.Message != got.Message {
		errs = append(errs, fail(want.Message, got.Message))
	}
	return errs
}

func formatList(ws []string) string {
	return "[" + strings.Join(ws, " ") + "]"
}
