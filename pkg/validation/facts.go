// Package validation provides input and configuration validation utilities.
package validation

import "fmt"

// FactsError describes a budget-fact input that fails validation. It is the
// only error the calculation engine can return; degenerate arithmetic never
// produces an error.
type FactsError struct {
	Field string
	Value float64
}

func (e *FactsError) Error() string {
	return fmt.Sprintf("invalid budget facts: %s must be non-negative, got %v", e.Field, e.Value)
}

// ValidateFacts checks the monetary and duration inputs of a calculation.
// All six quantities must be non-negative; everything else (including values
// that exceed the budget) is legal input.
func ValidateFacts(bac, pv, ev, ac, plannedDurationDays, actualDurationDays float64) error {
	checks := []struct {
		field string
		value float64
	}{
		{"budgetAtCompletion", bac},
		{"plannedValue", pv},
		{"earnedValue", ev},
		{"actualCost", ac},
		{"plannedDurationDays", plannedDurationDays},
		{"actualDurationDays", actualDurationDays},
	}
	for _, c := range checks {
		if c.value < 0 {
			return &FactsError{Field: c.field, Value: c.value}
		}
	}
	return nil
}
