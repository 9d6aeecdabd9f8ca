package session

import (
	"context"

	"github.com/ganot/worklog/internal/model"
)

// Store is the append-only record log a session works against.
type Store interface {
	// Append durably adds one record. A failure leaves the store
	// unchanged; callers report it and do not retry.
	Append(ctx context.Context, rec model.Record) error
	// Query returns the user's records. The file backend has no user
	// partitioning and returns every record in append order; the hosted
	// backend returns exact user_name matches in service order.
	Query(ctx context.Context, userName string) ([]model.Record, error)
	// Latest returns the user's greatest-timestamp record, or nil when
	// none exist.
	Latest(ctx context.Context, userName string) (*model.Record, error)
}
