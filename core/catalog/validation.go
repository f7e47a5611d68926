// Package catalog - Catalog validation
// Ensures catalog integrity and shapes user-authored services.
package catalog

import (
	"fmt"
	"strings"

	"github.com/gedeza/business-consulting/core/types"
	"github.com/gedeza/business-consulting/core/validation"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*types.Service) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateIdentity,
		validateUniqueTaskNames,
		validatePositiveHours,
		validateModelShape,
	}
}

// Validate checks the built-in tier against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error

	for _, name := range c.order {
		s := c.builtin[name]
		for _, rule := range rules {
			if err := rule(&s); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}

	return errs
}

// MustValidate panics if validation fails
func (c *Catalog) MustValidate() {
	errs := c.Validate(DefaultValidationRules())
	if len(errs) > 0 {
		panic(fmt.Sprintf("catalog has %d validation errors: %v", len(errs), errs))
	}
}

func validateIdentity(s *types.Service) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("service name is empty")
	}
	if strings.TrimSpace(s.Description) == "" {
		return fmt.Errorf("service description is empty")
	}
	return nil
}

func validateUniqueTaskNames(s *types.Service) error {
	seen := make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		if seen[t.Name] {
			return fmt.Errorf("duplicate task %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

func validatePositiveHours(s *types.Service) error {
	for _, t := range s.Tasks {
		if !t.Hours.IsPositive() {
			return fmt.Errorf("task %q has non-positive hours", t.Name)
		}
	}
	return nil
}

// hourly services need tasks; percentage services have none
func validateModelShape(s *types.Service) error {
	switch s.Model() {
	case types.PricingHourly:
		if len(s.Tasks) == 0 {
			return fmt.Errorf("hourly service has no tasks")
		}
	case types.PricingPercentage:
		if len(s.Tasks) != 0 {
			return fmt.Errorf("percentage service must not have tasks")
		}
	default:
		return fmt.Errorf("unknown pricing model %q", s.PricingModel)
	}
	return nil
}

// normalizeCustom applies the minimum-shape check to a user-authored service.
// Invalid tasks are dropped; duplicate names keep the first occurrence.
func normalizeCustom(in types.Service) (types.Service, error) {
	out := types.Service{
		Name:                strings.TrimSpace(validation.Sanitize(in.Name)),
		Description:         strings.TrimSpace(validation.Sanitize(in.Description)),
		RequiresDocCount:    in.RequiresDocCount,
		GroundworkReduction: true,
		PricingModel:        types.PricingHourly,
	}
	if out.Name == "" {
		return types.Service{}, qerrors.InvalidService("service name is required")
	}
	if out.Description == "" {
		return types.Service{}, qerrors.InvalidService("service description is required").WithContext("service", out.Name)
	}

	seen := make(map[string]bool, len(in.Tasks))
	for _, t := range in.Tasks {
		name := strings.TrimSpace(validation.Sanitize(t.Name))
		if name == "" || !t.Hours.IsPositive() || seen[name] {
			continue
		}
		seen[name] = true
		out.Tasks = append(out.Tasks, types.Task{
			Name:        name,
			Hours:       t.Hours,
			Description: strings.TrimSpace(validation.Sanitize(t.Description)),
			PerDocument: t.PerDocument,
		})
	}
	if len(out.Tasks) == 0 {
		return types.Service{}, qerrors.InvalidService("service needs at least one task with a name and positive hours").WithContext("service", out.Name)
	}

	if out.HasPerDocumentTasks() {
		out.RequiresDocCount = true
	}
	return out, nil
}
