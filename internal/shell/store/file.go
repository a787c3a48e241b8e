package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/medsuite/patientd/internal/core/patient"
)

// =============================================================================
// FileStore
// =============================================================================

// FileStore implements Store against a single JSON file holding the
// whole collection as a map of id to record body. Every read decodes
// the full file and every mutation rewrites it in full; there are no
// partial writes.
//
// A process-wide mutex serializes operations. Handlers run
// concurrently, and an unserialized load-modify-rewrite cycle on the
// shared file would interleave writes and corrupt the blob.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file store backed by path. The file does not
// need to exist yet; an absent file reads as an empty collection.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads and decodes the entire collection. Callers must hold mu.
func (s *FileStore) load(op string) (map[string]patient.Record, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]patient.Record), nil
	}
	if err != nil {
		return nil, NewStoreError(op, "", "failed to read collection file", err)
	}

	data := make(map[string]patient.Record)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, NewStoreError(op, "", "failed to decode collection file", ErrInvalidData)
	}
	return data, nil
}

// save rewrites the entire collection, pretty-printed. Callers must
// hold mu.
func (s *FileStore) save(op string, data map[string]patient.Record) error {
	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return NewStoreError(op, "", "failed to encode collection", ErrInvalidData)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return NewStoreError(op, "", "failed to write collection file", err)
	}
	return nil
}

// CreatePatient inserts a new record, failing if the id exists. The
// collection on disk is left untouched on failure.
func (s *FileStore) CreatePatient(ctx context.Context, id string, rec patient.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load("CreatePatient")
	if err != nil {
		return err
	}
	if _, exists := data[id]; exists {
		return NewStoreError("CreatePatient", id, "already exists", ErrDuplicateID)
	}

	data[id] = rec
	return s.save("CreatePatient", data)
}

// GetPatient returns the record for id.
func (s *FileStore) GetPatient(ctx context.Context, id string) (patient.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load("GetPatient")
	if err != nil {
		return patient.Record{}, err
	}

	rec, ok := data[id]
	if !ok {
		return patient.Record{}, NewStoreError("GetPatient", id, "not found", ErrNotFound)
	}
	return rec, nil
}

// UpdatePatient replaces the record for id in full.
func (s *FileStore) UpdatePatient(ctx context.Context, id string, rec patient.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load("UpdatePatient")
	if err != nil {
		return err
	}
	if _, ok := data[id]; !ok {
		return NewStoreError("UpdatePatient", id, "not found", ErrNotFound)
	}

	data[id] = rec
	return s.save("UpdatePatient", data)
}

// DeletePatient removes the record for id.
func (s *FileStore) DeletePatient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load("DeletePatient")
	if err != nil {
		return err
	}
	if _, ok := data[id]; !ok {
		return NewStoreError("DeletePatient", id, "not found", ErrNotFound)
	}

	delete(data, id)
	return s.save("DeletePatient", data)
}

// ListPatients returns the full collection keyed by id.
func (s *FileStore) ListPatients(ctx context.Context) (map[string]patient.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load("ListPatients")
}

// Close is a no-op; the file is opened and closed per operation.
func (s *FileStore) Close() error {
	return nil
}
