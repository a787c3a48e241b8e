// Package patient provides the pure domain logic for patient records:
// validation, derived-field computation, partial-update merging, and
// sorting. All functions are side-effect free; persistence and HTTP
// concerns live in the shell packages.
package patient

import "math"

// =============================================================================
// Gender
// =============================================================================

// Gender is the allowed set of gender values for a record.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the allowed gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// =============================================================================
// Record
// =============================================================================

// Record is a validated patient record. The identity key is not part of
// the record body; it is carried by the store as the mapping key.
//
// A Record should only be constructed through Validate so that the
// field constraints hold for every reachable value. BMI and BMICategory
// are derived on demand and never persisted.
type Record struct {
	Name   string  `json:"name" db:"name"`
	City   string  `json:"city" db:"city"`
	Age    int     `json:"age" db:"age"`
	Gender Gender  `json:"gender" db:"gender"`
	Height float64 `json:"height" db:"height"`
	Weight float64 `json:"weight" db:"weight"`
}

// BMI returns the body mass index derived from weight and height,
// rounded to two decimal places. Validate guarantees height > 0.
func (r Record) BMI() float64 {
	return math.Round(r.Weight/(r.Height*r.Height)*100) / 100
}

// BMI category thresholds.
const (
	bmiUnderweight = 18.5
	bmiNormal      = 24.9
	bmiOverweight  = 29.9
)

// BMICategory returns the weight classification for the record's BMI.
func (r Record) BMICategory() string {
	bmi := r.BMI()
	switch {
	case bmi < bmiUnderweight:
		return "Underweight"
	case bmi < bmiNormal:
		return "Normal weight"
	case bmi < bmiOverweight:
		return "Overweight"
	default:
		return "Obesity"
	}
}

// =============================================================================
// Update
// =============================================================================

// Update is a sparse patch over a record. Nil fields were omitted by
// the caller and must leave the existing value untouched; the pointer
// representation keeps "omitted" distinct from a zero value.
//
// Update doubles as the candidate shape fed into Validate: a full
// candidate is an Update with every field set.
type Update struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age"`
	Gender *Gender  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

// Candidate returns r as a fully-populated Update, suitable as the base
// for a merge.
func (r Record) Candidate() Update {
	return Update{
		Name:   &r.Name,
		City:   &r.City,
		Age:    &r.Age,
		Gender: &r.Gender,
		Height: &r.Height,
		Weight: &r.Weight,
	}
}
