package validator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dataquality/internal/domain"
)

// RuleError is an execution error raised by one rule during ValidateRecord.
type RuleError struct {
	Position int
	RuleKey  string
	Err      error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d (%s): %v", e.Position, e.RuleKey, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// DataValidationService runs a fixed, ordered set of validators concurrently
// against one record and merges their outcomes.
type DataValidationService struct {
	validators []Validator
}

// NewDataValidationService creates a service over a copy of validators.
// The collection cannot change after construction.
func NewDataValidationService(validators []Validator) *DataValidationService {
	vs := make([]Validator, len(validators))
	copy(vs, validators)
	return &DataValidationService{validators: vs}
}

// RuleKeys returns the key of every held validator in collection order.
func (s *DataValidationService) RuleKeys() []string {
	keys := make([]string, 0, len(s.validators))
	for _, v := range s.validators {
		keys = append(keys, keyOf(v))
	}
	return keys
}

// ValidateRecord starts every validator without waiting, joins on all of
// them, and concatenates the errors of failing outcomes in collection order.
//
// Any execution error aborts the whole call: the first one is returned as a
// *RuleError, the shared context is canceled and no outcome is produced.
func (s *DataValidationService) ValidateRecord(ctx context.Context, rec domain.ConcessionRecord) (Outcome, error) {
	outcomes := make([]Outcome, len(s.validators))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range s.validators {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &RuleError{Position: i, RuleKey: keyOf(v), Err: fmt.Errorf("panic: %v", r)}
				}
			}()
			out, verr := v.Validate(gctx, rec)
			if verr != nil {
				return &RuleError{Position: i, RuleKey: keyOf(v), Err: verr}
			}
			// Each goroutine owns its slot; merge order never depends on completion order.
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	var merged []string
	for _, out := range outcomes {
		if out.Valid() {
			continue
		}
		merged = append(merged, out.errors...)
	}
	return NewOutcome(merged), nil
}
