// Package validation provides the aggregated business-rule failure returned
// by validators. A Failure is an ordinary error value carrying one detail per
// broken rule, so a single request reports every problem at once instead of
// stopping at the first.
package validation

import "strings"

// Detail describes one broken rule, targeted at the field that caused it.
type Detail struct {
	Description string `json:"description"`
	Target      string `json:"target"`
}

// Failure aggregates the details of one validation pass.
type Failure struct {
	Message string   `json:"message"`
	Details []Detail `json:"details"`
}

func (f *Failure) Error() string {
	if len(f.Details) == 0 {
		return f.Message
	}
	parts := make([]string, 0, len(f.Details))
	for _, d := range f.Details {
		parts = append(parts, d.Description)
	}
	return f.Message + ": " + strings.Join(parts, "; ")
}

// AsFailure reports whether err is (or wraps) a validation Failure.
func AsFailure(err error) (*Failure, bool) {
	f, ok := err.(*Failure)
	return f, ok
}

// Collector accumulates details during a single validation pass. The zero
// value is ready to use; a fresh Collector is built per call so failures
// never leak between validations.
type Collector struct {
	details []Detail
}

// Add records one broken rule in evaluation order.
func (c *Collector) Add(description, target string) {
	c.details = append(c.details, Detail{Description: description, Target: target})
}

// Failure returns the aggregate under the given summary message, or nil when
// no rule was broken.
func (c *Collector) Failure(message string) *Failure {
	if len(c.details) == 0 {
		return nil
	}
	return &Failure{Message: message, Details: c.details}
}
