package concession

import (
	"context"
	"fmt"
	"strings"

	"dataquality/internal/domain"
	"dataquality/internal/port"
	"dataquality/internal/validator"
)

const RuleKeyDuplicateCVE = "logic.cve_number.duplicate"

// DuplicateCVEValidator checks that no previously accepted record of another
// concession already carries the same CVE number. Earlier accepted runs of the
// same record do not count, so resubmitting a record keeps its outcome. A
// finder failure is an execution error, not a violation.
func DuplicateCVEValidator(finder port.DuplicateRecordFinder) *BuiltinValidator {
	return &BuiltinValidator{
		key:  RuleKeyDuplicateCVE,
		name: "Logical: Duplicate CVE Number",
		fn:   duplicateCVEValidator(finder),
	}
}

func duplicateCVEValidator(finder port.DuplicateRecordFinder) func(context.Context, domain.ConcessionRecord) (validator.Outcome, error) {
	return func(ctx context.Context, rec domain.ConcessionRecord) (validator.Outcome, error) {
		if rec.HasBlankCVE() {
			return validator.Pass(), nil
		}
		cve, _ := rec.CVENumber()
		cve = strings.TrimSpace(cve)

		matches, err := finder.FindAcceptedByCVE(ctx, port.DuplicateQuery{
			CVENumber:      cve,
			ConcessionName: strings.TrimSpace(rec.ConcessionName()),
			CompanyName:    strings.TrimSpace(rec.CompanyName()),
		})
		if err != nil {
			return validator.Outcome{}, fmt.Errorf("duplicate lookup for CVE %s: %w", cve, err)
		}
		if len(matches) == 0 {
			return validator.Pass(), nil
		}

		names := make([]string, 0, len(matches))
		for idx := range matches {
			m := &matches[idx]
			names = append(names, fmt.Sprintf("%q (accepted %s)", m.ConcessionName, m.CreatedAt.Format("2006-01-02")))
		}
		return validator.Fail(fmt.Sprintf(
			"CVE Number '%s' already belongs to an accepted record: %s.",
			cve, strings.Join(names, ", "),
		)), nil
	}
}
