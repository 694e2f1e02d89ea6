package validator

import (
	"context"
	"fmt"

	"dataquality/internal/domain"
)

// Validator is the capability every business rule implements.
//
// A rule reports business violations as Outcome data with a nil error. A
// non-nil error means the rule itself could not run (for example an
// unreachable dependency) and is never used to signal a violation.
// Implementations must be safe for concurrent use across records.
type Validator interface {
	Validate(ctx context.Context, rec domain.ConcessionRecord) (Outcome, error)
}

// Rule is a Validator that carries registry metadata.
type Rule interface {
	Validator
	RuleKey() string
	RuleName() string
}

// Func adapts an ordinary function into a Validator.
type Func func(ctx context.Context, rec domain.ConcessionRecord) (Outcome, error)

// Validate calls f.
func (f Func) Validate(ctx context.Context, rec domain.ConcessionRecord) (Outcome, error) {
	return f(ctx, rec)
}

// keyOf returns the rule key of v, or its dynamic type for anonymous validators.
func keyOf(v Validator) string {
	if r, ok := v.(Rule); ok {
		return r.RuleKey()
	}
	return fmt.Sprintf("%T", v)
}
