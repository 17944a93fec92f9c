// Package store persists contact records and verification results for
// resumable batch processing.
package store

import (
	"context"

	"github.com/Up-Bizz/ContactVerifier/internal/model"
)

// RecordFilter specifies criteria for listing records.
type RecordFilter struct {
	Status model.RecordStatus `json:"status,omitempty"`
	Limit  int                `json:"limit,omitempty"`
	Offset int                `json:"offset,omitempty"`
}

// Store defines the persistence interface for the verification batch.
// Completed results are durably written before the runner pulls the next
// record, so a crash loses at most the in-flight row.
type Store interface {
	// InsertRecords adds records, silently skipping rows that duplicate an
	// existing (first_name, last_name, source_url) identity. Returns the
	// number actually inserted.
	InsertRecords(ctx context.Context, recs []model.Record) (int, error)

	// NextUnprocessed returns the oldest record still waiting for
	// verification, or nil when the batch is done.
	NextUnprocessed(ctx context.Context) (*model.Record, error)

	// SetStatus moves a record to the given lifecycle status.
	SetStatus(ctx context.Context, id string, status model.RecordStatus) error

	// SaveResult writes the three presence fields and marks the record
	// processed in a single durable write.
	SaveResult(ctx context.Context, id string, result *model.VerificationResult) error

	// SetError records a record-level failure message and marks the record
	// errored.
	SetError(ctx context.Context, id string, msg string) error

	// ResetProcessing returns records orphaned in "processing" by a crashed
	// run to the queue. Returns the number reclaimed.
	ResetProcessing(ctx context.Context) (int, error)

	ListRecords(ctx context.Context, filter RecordFilter) ([]model.Record, error)
	CountByStatus(ctx context.Context) (map[model.RecordStatus]int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
