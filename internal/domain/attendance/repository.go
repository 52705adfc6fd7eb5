package attendance

import (
	"context"
)

// LogRepository stores entry/exit events.
type LogRepository interface {
	// Create appends a new event and returns it with ID and timestamps set
	Create(ctx context.Context, log Log) (Log, error)

	// GetByID retrieves a single event
	GetByID(ctx context.Context, id string) (Log, error)

	// UpdateComment replaces the comment of an event
	UpdateComment(ctx context.Context, id string, comment string) error

	// List retrieves events with filters and pagination
	List(ctx context.Context, filter LogFilter) ([]Log, int64, error)
}
