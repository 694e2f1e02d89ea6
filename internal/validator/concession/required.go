package concession

import (
	"context"
	"fmt"
	"strings"

	"dataquality/internal/domain"
	"dataquality/internal/validator"
)

const (
	RuleKeyRequiredConcessionName = "req.concession_name"
	RuleKeyRequiredCompanyName    = "req.company_name"
	RuleKeyRequiredRegion         = "req.region"
)

func requiredText(key, name, label string, extract func(domain.ConcessionRecord) string) *BuiltinValidator {
	return &BuiltinValidator{
		key:  key,
		name: name,
		fn: func(_ context.Context, rec domain.ConcessionRecord) (validator.Outcome, error) {
			if strings.TrimSpace(extract(rec)) == "" {
				return validator.Fail(fmt.Sprintf("%s cannot be empty.", label)), nil
			}
			return validator.Pass(), nil
		},
	}
}

// RequiredFieldValidators returns the non-blank checks for the text fields.
func RequiredFieldValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		requiredText(RuleKeyRequiredConcessionName, "Required: Concession Name", "Concession Name",
			func(r domain.ConcessionRecord) string { return r.ConcessionName() }),
		requiredText(RuleKeyRequiredCompanyName, "Required: Company Name", "Company Name",
			func(r domain.ConcessionRecord) string { return r.CompanyName() }),
		requiredText(RuleKeyRequiredRegion, "Required: Region", "Region",
			func(r domain.ConcessionRecord) string { return r.Region() }),
	}
}
