package db

import (
	"context"

	"github.com/sklowrylaw/website/pkg/domain/consultation"
)

// ConsultationInterface is the persistence boundary for consultation requests.
type ConsultationInterface interface {
	// Register stores a new consultation request with status "unread"
	// and returns the stored row, timestamps filled in.
	//
	// Every call creates a fresh record; equal payloads are not deduplicated.
	Register(ctx context.Context, spec consultation.NewRecord) (consultation.Record, error)

	// Find returns all consultation requests, newest first.
	Find(ctx context.Context) ([]consultation.Record, error)

	// Update applies delta to the identified record, refreshes its
	// updated_at timestamp and returns the updated row.
	//
	// When no such record exists, it returns an error wrapping
	// errors.ErrMissing.
	Update(ctx context.Context, id int, delta consultation.Delta) (consultation.Record, error)

	// Delete removes the identified record.
	//
	// When no such record exists, it returns an error wrapping
	// errors.ErrMissing.
	Delete(ctx context.Context, id int) error
}
