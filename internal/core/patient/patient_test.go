package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// BMI Derivation Tests
// =============================================================================

func TestBMI_RoundsToTwoDecimals(t *testing.T) {
	r := Record{Height: 1.6, Weight: 60}
	assert.Equal(t, 23.44, r.BMI())
}

func TestBMI_ChangesWithWeight(t *testing.T) {
	r := Record{Height: 1.6, Weight: 80}
	assert.Equal(t, 31.25, r.BMI())
}

func TestBMICategory_Underweight(t *testing.T) {
	r := Record{Height: 1, Weight: 18.49}
	assert.Equal(t, "Underweight", r.BMICategory())
}

func TestBMICategory_NormalWeightAtLowerBoundary(t *testing.T) {
	// bmi == 18.5 falls in "Normal weight", not "Underweight"
	r := Record{Height: 1, Weight: 18.5}
	assert.Equal(t, "Normal weight", r.BMICategory())
}

func TestBMICategory_OverweightAtBoundary(t *testing.T) {
	// bmi == 24.9 falls in "Overweight"
	r := Record{Height: 1, Weight: 24.9}
	assert.Equal(t, "Overweight", r.BMICategory())
}

func TestBMICategory_ObesityAtBoundary(t *testing.T) {
	// bmi == 29.9 falls in "Obesity"
	r := Record{Height: 1, Weight: 29.9}
	assert.Equal(t, "Obesity", r.BMICategory())
}

func TestBMICategory_Obesity(t *testing.T) {
	r := Record{Height: 1.6, Weight: 80}
	assert.Equal(t, "Obesity", r.BMICategory())
}

// =============================================================================
// Gender Tests
// =============================================================================

func TestGender_Valid(t *testing.T) {
	assert.True(t, GenderMale.Valid())
	assert.True(t, GenderFemale.Valid())
	assert.True(t, GenderOther.Valid())
	assert.False(t, Gender("unknown").Valid())
	assert.False(t, Gender("").Valid())
}

// =============================================================================
// Candidate Tests
// =============================================================================

func TestCandidate_PopulatesEveryField(t *testing.T) {
	r := Record{Name: "Ann", City: "X", Age: 30, Gender: GenderFemale, Height: 1.6, Weight: 60}
	c := r.Candidate()

	assert.Equal(t, "Ann", *c.Name)
	assert.Equal(t, "X", *c.City)
	assert.Equal(t, 30, *c.Age)
	assert.Equal(t, GenderFemale, *c.Gender)
	assert.Equal(t, 1.6, *c.Height)
	assert.Equal(t, 60.0, *c.Weight)
}
