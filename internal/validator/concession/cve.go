package concession

import (
	"context"
	"fmt"
	"regexp"

	"dataquality/internal/domain"
	"dataquality/internal/validator"
)

const (
	RuleKeyCVEFormat = "fmt.cve_number"

	cveEmptyMessage = "CVE Number cannot be empty or null."
)

var cvePattern = regexp.MustCompile(`^\d{5}$`)

// CVEFormatValidator checks that the CVE number is present and exactly five
// digits. It reports at most one error: a missing value is never also
// reported as a format violation.
func CVEFormatValidator() *BuiltinValidator {
	return &BuiltinValidator{
		key:  RuleKeyCVEFormat,
		name: "Format: CVE Number",
		fn: func(_ context.Context, rec domain.ConcessionRecord) (validator.Outcome, error) {
			if rec.HasBlankCVE() {
				return validator.Fail(cveEmptyMessage), nil
			}
			cve, _ := rec.CVENumber()
			if !cvePattern.MatchString(cve) {
				return validator.Fail(fmt.Sprintf("CVE Number '%s' is not in the required 5-digit format (e.g., 12345).", cve)), nil
			}
			return validator.Pass(), nil
		},
	}
}
