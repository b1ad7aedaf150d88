// Package model holds the stored entities, their write payloads, and the
// merge/replace mutation policies. Field rules mirror the store-level schema:
// they run once per write, immediately before the document is persisted.
package model

import (
	"fmt"
	"unicode/utf8"
)

// ValidationError reports a document that violates its field rules.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// rule is one field constraint. MaxLen 0 means unbounded.
type rule struct {
	Field  string
	MinLen int
	MaxLen int
}

// checkString applies a rule to an optional string field. Absent required
// fields and length violations both fail.
func checkString(r rule, v *string) error {
	if v == nil {
		return validationErrorf("%s is required", r.Field)
	}
	n := utf8.RuneCountInString(*v)
	if n < r.MinLen {
		return validationErrorf("%s must be at least %d characters", r.Field, r.MinLen)
	}
	if r.MaxLen > 0 && n > r.MaxLen {
		return validationErrorf("%s must be at most %d characters", r.Field, r.MaxLen)
	}
	return nil
}

func checkAll(rules []rule, fields []*string) error {
	for i, r := range rules {
		if err := checkString(r, fields[i]); err != nil {
			return err
		}
	}
	return nil
}
