package patient

// Merge overlays the non-nil fields of patch onto a full candidate
// built from existing. Omitted patch fields keep the existing value.
// The identity key is never part of the merge; the caller re-attaches
// it when persisting.
//
// Merge never touches storage. The returned candidate is meant to be
// passed straight into Validate before anything is persisted.
func Merge(existing Record, patch Update) Update {
	candidate := existing.Candidate()

	if patch.Name != nil {
		candidate.Name = patch.Name
	}
	if patch.City != nil {
		candidate.City = patch.City
	}
	if patch.Age != nil {
		candidate.Age = patch.Age
	}
	if patch.Gender != nil {
		candidate.Gender = patch.Gender
	}
	if patch.Height != nil {
		candidate.Height = patch.Height
	}
	if patch.Weight != nil {
		candidate.Weight = patch.Weight
	}

	return candidate
}
