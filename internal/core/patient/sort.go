package patient

import (
	"errors"
	"fmt"
	"sort"
)

// =============================================================================
// Sorting
// =============================================================================

var (
	// ErrInvalidSortField is returned for a sort field outside the
	// allowed set.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrInvalidSortOrder is returned for a sort order other than asc
	// or desc.
	ErrInvalidSortOrder = errors.New("invalid sort order")
)

// SortField is a field records can be ordered by.
type SortField string

const (
	SortByAge    SortField = "age"
	SortByBMI    SortField = "bmi"
	SortByWeight SortField = "weight"
	SortByHeight SortField = "height"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortField validates a raw sort field value.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByAge, SortByBMI, SortByWeight, SortByHeight:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (must be one of age, bmi, weight, height)", ErrInvalidSortField, s)
}

// ParseSortOrder validates a raw sort order value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortAsc, SortDesc:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q (must be asc or desc)", ErrInvalidSortOrder, s)
}

// Keyed pairs a record with its store identity for operations that need
// both.
type Keyed struct {
	ID string
	Record
}

// Sort orders records in place by the given field and direction. The
// sort is stable, so ties keep the caller's original ordering.
func Sort(records []Keyed, field SortField, order SortOrder) error {
	if _, err := ParseSortField(string(field)); err != nil {
		return err
	}
	if _, err := ParseSortOrder(string(order)); err != nil {
		return err
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := sortValue(records[i].Record, field), sortValue(records[j].Record, field)
		if order == SortDesc {
			return a > b
		}
		return a < b
	})
	return nil
}

func sortValue(r Record, field SortField) float64 {
	switch field {
	case SortByAge:
		return float64(r.Age)
	case SortByBMI:
		return r.BMI()
	case SortByWeight:
		return r.Weight
	case SortByHeight:
		return r.Height
	}
	return 0
}
