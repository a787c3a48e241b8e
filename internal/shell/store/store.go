package store

import (
	"context"

	"github.com/medsuite/patientd/internal/core/patient"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for patient records. Records
// are keyed by id; the id never appears inside the persisted body.
// Derived fields (bmi, bmi_category) are never stored and are always
// recomputed from the returned Record.
type Store interface {
	// CreatePatient inserts a new record. Fails with ErrDuplicateID if
	// the id is already taken.
	CreatePatient(ctx context.Context, id string, rec patient.Record) error

	// GetPatient returns the record for id, or ErrNotFound.
	GetPatient(ctx context.Context, id string) (patient.Record, error)

	// UpdatePatient replaces the record for id in full. Fails with
	// ErrNotFound if the id is unknown; there is no partial persistence.
	UpdatePatient(ctx context.Context, id string, rec patient.Record) error

	// DeletePatient removes the record for id, or fails with ErrNotFound.
	DeletePatient(ctx context.Context, id string) error

	// ListPatients returns the full collection keyed by id.
	ListPatients(ctx context.Context) (map[string]patient.Record, error)

	// Close releases any underlying resources.
	Close() error
}
