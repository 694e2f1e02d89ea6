package validator

import (
	"fmt"

	"dataquality/internal/domain"
)

// RuleDescriptor identifies a registered rule.
type RuleDescriptor struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Registry maps rule keys to Rule implementations, keeping registration order.
type Registry struct {
	order []Rule
	rules map[string]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule to the registry.
func (r *Registry) Register(rule Rule) error {
	key := rule.RuleKey()
	if _, exists := r.rules[key]; exists {
		return fmt.Errorf("registering %q: %w", key, domain.ErrDuplicateRule)
	}
	r.rules[key] = rule
	r.order = append(r.order, rule)
	return nil
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Rule {
	return r.rules[key]
}

// All returns all registered rules in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.order))
	copy(out, r.order)
	return out
}

// Resolve returns the validators named by keys, in the order given. An empty
// key list selects every registered rule in registration order.
func (r *Registry) Resolve(keys []string) ([]Validator, error) {
	if len(keys) == 0 {
		out := make([]Validator, 0, len(r.order))
		for _, rule := range r.order {
			out = append(out, rule)
		}
		return out, nil
	}

	seen := make(map[string]bool, len(keys))
	out := make([]Validator, 0, len(keys))
	for _, key := range keys {
		rule, ok := r.rules[key]
		if !ok {
			return nil, fmt.Errorf("resolving %q: %w", key, domain.ErrUnknownRule)
		}
		if seen[key] {
			return nil, fmt.Errorf("resolving %q: %w", key, domain.ErrDuplicateRule)
		}
		seen[key] = true
		out = append(out, rule)
	}
	return out, nil
}

// Descriptors lists key and name of every registered rule in registration order.
func (r *Registry) Descriptors() []RuleDescriptor {
	out := make([]RuleDescriptor, 0, len(r.order))
	for _, rule := range r.order {
		out = append(out, RuleDescriptor{Key: rule.RuleKey(), Name: rule.RuleName()})
	}
	return out
}

// Describe returns descriptors for an already-resolved validator list.
func Describe(validators []Validator) []RuleDescriptor {
	out := make([]RuleDescriptor, 0, len(validators))
	for _, v := range validators {
		d := RuleDescriptor{Key: keyOf(v)}
		if rule, ok := v.(Rule); ok {
			d.Name = rule.RuleName()
		}
		out = append(out, d)
	}
	return out
}
