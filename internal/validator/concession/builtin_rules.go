package concession

import (
	"context"

	"dataquality/internal/domain"
	"dataquality/internal/port"
	"dataquality/internal/validator"
)

// BuiltinValidator wraps a rule function and its metadata for the registry.
type BuiltinValidator struct {
	key  string
	name string
	fn   func(context.Context, domain.ConcessionRecord) (validator.Outcome, error)
}

func (b *BuiltinValidator) Validate(ctx context.Context, rec domain.ConcessionRecord) (validator.Outcome, error) {
	return b.fn(ctx, rec)
}
func (b *BuiltinValidator) RuleKey() string  { return b.key }
func (b *BuiltinValidator) RuleName() string { return b.name }

// Dependencies holds what the lookup-backed rules need. Nil members drop the
// rules that depend on them.
type Dependencies struct {
	SentimentMin float64
	SentimentMax float64
	Regions      *RegionLookup
	Duplicates   port.DuplicateRecordFinder
}

// DefaultDependencies returns the stateless rule configuration.
func DefaultDependencies() Dependencies {
	return Dependencies{SentimentMin: DefaultSentimentMin, SentimentMax: DefaultSentimentMax}
}

// BuiltinValidators returns every builtin rule in canonical order: required
// fields, identifier format, score range, region master, duplicates.
func BuiltinValidators(deps Dependencies) []*BuiltinValidator {
	all := make([]*BuiltinValidator, 0, 7)
	all = append(all, RequiredFieldValidators()...)
	all = append(all, CVEFormatValidator())
	all = append(all, SentimentScoreValidator(deps.SentimentMin, deps.SentimentMax))
	if deps.Regions != nil {
		all = append(all, KnownRegionValidator(deps.Regions))
	}
	if deps.Duplicates != nil {
		all = append(all, DuplicateCVEValidator(deps.Duplicates))
	}
	return all
}

// NewRegistry registers every builtin rule built from deps.
func NewRegistry(deps Dependencies) (*validator.Registry, error) {
	reg := validator.NewRegistry()
	for _, v := range BuiltinValidators(deps) {
		if err := reg.Register(v); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
