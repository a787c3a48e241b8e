package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/medsuite/patientd/internal/core/patient"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite. It is the swappable
// alternative to the flat-file backend; the database enforces the
// id uniqueness that FileStore checks by hand.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Row Mapping
// =============================================================================

// patientRow represents a patient row in the database. Only stored
// fields are persisted; bmi and bmi_category are derived by the core.
type patientRow struct {
	ID     string  `db:"id"`
	Name   string  `db:"name"`
	City   string  `db:"city"`
	Age    int     `db:"age"`
	Gender string  `db:"gender"`
	Height float64 `db:"height"`
	Weight float64 `db:"weight"`
}

func rowFromRecord(id string, rec patient.Record) patientRow {
	return patientRow{
		ID:     id,
		Name:   rec.Name,
		City:   rec.City,
		Age:    rec.Age,
		Gender: string(rec.Gender),
		Height: rec.Height,
		Weight: rec.Weight,
	}
}

func (r patientRow) toRecord() patient.Record {
	return patient.Record{
		Name:   r.Name,
		City:   r.City,
		Age:    r.Age,
		Gender: patient.Gender(r.Gender),
		Height: r.Height,
		Weight: r.Weight,
	}
}

// =============================================================================
// Patient Operations
// =============================================================================

// CreatePatient inserts a new record, failing if the id exists.
func (s *SQLiteStore) CreatePatient(ctx context.Context, id string, rec patient.Record) error {
	query := `
		INSERT INTO patients (id, name, city, age, gender, height, weight)
		VALUES (:id, :name, :city, :age, :gender, :height, :weight)`

	_, err := s.db.NamedExecContext(ctx, query, rowFromRecord(id, rec))
	if err != nil {
		if isUniqueViolation(err) {
			return NewStoreError("CreatePatient", id, "already exists", ErrDuplicateID)
		}
		return NewStoreError("CreatePatient", id, err.Error(), err)
	}
	return nil
}

// GetPatient returns the record for id.
func (s *SQLiteStore) GetPatient(ctx context.Context, id string) (patient.Record, error) {
	var row patientRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, name, city, age, gender, height, weight FROM patients WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return patient.Record{}, NewStoreError("GetPatient", id, "not found", ErrNotFound)
	}
	if err != nil {
		return patient.Record{}, NewStoreError("GetPatient", id, err.Error(), err)
	}
	return row.toRecord(), nil
}

// UpdatePatient replaces the record for id in full.
func (s *SQLiteStore) UpdatePatient(ctx context.Context, id string, rec patient.Record) error {
	query := `
		UPDATE patients
		SET name = :name, city = :city, age = :age, gender = :gender,
		    height = :height, weight = :weight
		WHERE id = :id`

	result, err := s.db.NamedExecContext(ctx, query, rowFromRecord(id, rec))
	if err != nil {
		return NewStoreError("UpdatePatient", id, err.Error(), err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return NewStoreError("UpdatePatient", id, err.Error(), err)
	}
	if rows == 0 {
		return NewStoreError("UpdatePatient", id, "not found", ErrNotFound)
	}
	return nil
}

// DeletePatient removes the record for id.
func (s *SQLiteStore) DeletePatient(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return NewStoreError("DeletePatient", id, err.Error(), err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return NewStoreError("DeletePatient", id, err.Error(), err)
	}
	if rows == 0 {
		return NewStoreError("DeletePatient", id, "not found", ErrNotFound)
	}
	return nil
}

// ListPatients returns the full collection keyed by id.
func (s *SQLiteStore) ListPatients(ctx context.Context) (map[string]patient.Record, error) {
	var rows []patientRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, name, city, age, gender, height, weight FROM patients ORDER BY id`)
	if err != nil {
		return nil, NewStoreError("ListPatients", "", err.Error(), err)
	}

	data := make(map[string]patient.Record, len(rows))
	for _, row := range rows {
		data[row.ID] = row.toRecord()
	}
	return data, nil
}

// isUniqueViolation checks for a SQLite primary key conflict.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}
