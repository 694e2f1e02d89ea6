package concession

import (
	"context"
	"fmt"
	"strings"

	"dataquality/internal/domain"
	"dataquality/internal/validator"
)

const RuleKeyKnownRegion = "logic.region.known"

// KnownRegionValidator checks the region against the master list captured by
// closure. An empty master list or a blank region is skipped; blank regions
// are reported by the required-field rule.
func KnownRegionValidator(lookup *RegionLookup) *BuiltinValidator {
	return &BuiltinValidator{
		key:  RuleKeyKnownRegion,
		name: "Logical: Region Exists in Master",
		fn: func(_ context.Context, rec domain.ConcessionRecord) (validator.Outcome, error) {
			region := rec.Region()
			if lookup.Len() == 0 || strings.TrimSpace(region) == "" {
				return validator.Pass(), nil
			}
			if _, ok := lookup.Find(region); !ok {
				return validator.Fail(fmt.Sprintf("Region '%s' is not in the region master list.", region)), nil
			}
			return validator.Pass(), nil
		},
	}
}
