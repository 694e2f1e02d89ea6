package validator

import "encoding/json"

// Outcome is the immutable result of a validation: an ordered list of error
// messages. Validity is derived from the list and cannot be set on its own.
type Outcome struct {
	errors []string
}

// NewOutcome returns an Outcome holding a copy of errs.
func NewOutcome(errs []string) Outcome {
	if len(errs) == 0 {
		return Outcome{}
	}
	cp := make([]string, len(errs))
	copy(cp, errs)
	return Outcome{errors: cp}
}

// Pass returns a valid Outcome.
func Pass() Outcome { return Outcome{} }

// Fail returns an Outcome carrying msgs in order.
func Fail(msgs ...string) Outcome { return NewOutcome(msgs) }

// Valid reports whether the outcome has no errors.
func (o Outcome) Valid() bool { return len(o.errors) == 0 }

// Errors returns a copy of the error messages. It is never nil.
func (o Outcome) Errors() []string {
	cp := make([]string, len(o.errors))
	copy(cp, o.errors)
	return cp
}

type outcomeJSON struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// MarshalJSON encodes the outcome as {"valid": ..., "errors": [...]}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(outcomeJSON{Valid: o.Valid(), Errors: o.Errors()})
}

// UnmarshalJSON decodes an outcome. The encoded valid flag is ignored and
// re-derived from the errors.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw outcomeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = NewOutcome(raw.Errors)
	return nil
}
