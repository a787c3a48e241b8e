package patient

import (
	"errors"
	"fmt"
)

// =============================================================================
// Validation Errors
// =============================================================================

var (
	// ErrMissingField is returned when a required field was not supplied.
	ErrMissingField = errors.New("required field missing")

	// ErrConstraintViolation is returned when a supplied field breaks a
	// range or enum constraint.
	ErrConstraintViolation = errors.New("field constraint violated")
)

// ValidationError describes a single failed field check. It wraps one of
// the sentinel errors above so callers can branch with errors.Is.
type ValidationError struct {
	Field      string // field that failed (e.g., "age")
	Constraint string // human-readable constraint (e.g., "must be between 0 and 120")
	Value      any    // offending value, nil for missing fields
	Err        error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("field %s is required", e.Field)
	}
	return fmt.Sprintf("field %s %s (got %v)", e.Field, e.Constraint, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Err: ErrMissingField}
}

func constraintViolation(field, constraint string, value any) *ValidationError {
	return &ValidationError{
		Field:      field,
		Constraint: constraint,
		Value:      value,
		Err:        ErrConstraintViolation,
	}
}

// =============================================================================
// Validate
// =============================================================================

// Age bounds.
const (
	minAge = 0
	maxAge = 120
)

// Validate checks a candidate against the record field constraints and
// returns the resulting Record. Every field is required; nil fields
// fail with a missing-field error, supplied fields failing a range or
// enum check fail with a constraint violation. Checks run in declared
// field order and the first failure wins.
//
// Height must be strictly positive: BMI is derived from every record
// on read, so a zero height is rejected here instead of faulting at
// derivation time.
func Validate(c Update) (Record, error) {
	if c.Name == nil {
		return Record{}, missingField("name")
	}
	if *c.Name == "" {
		return Record{}, constraintViolation("name", "must be non-empty", *c.Name)
	}
	if c.City == nil {
		return Record{}, missingField("city")
	}
	if *c.City == "" {
		return Record{}, constraintViolation("city", "must be non-empty", *c.City)
	}
	if c.Age == nil {
		return Record{}, missingField("age")
	}
	if *c.Age < minAge || *c.Age > maxAge {
		return Record{}, constraintViolation("age", fmt.Sprintf("must be between %d and %d", minAge, maxAge), *c.Age)
	}
	if c.Gender == nil {
		return Record{}, missingField("gender")
	}
	if !c.Gender.Valid() {
		return Record{}, constraintViolation("gender", "must be one of male, female, other", string(*c.Gender))
	}
	if c.Height == nil {
		return Record{}, missingField("height")
	}
	if *c.Height <= 0 {
		return Record{}, constraintViolation("height", "must be greater than 0", *c.Height)
	}
	if c.Weight == nil {
		return Record{}, missingField("weight")
	}
	if *c.Weight < 0 {
		return Record{}, constraintViolation("weight", "must be at least 0", *c.Weight)
	}

	return Record{
		Name:   *c.Name,
		City:   *c.City,
		Age:    *c.Age,
		Gender: *c.Gender,
		Height: *c.Height,
		Weight: *c.Weight,
	}, nil
}
