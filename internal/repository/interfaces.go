package repository

import (
	"context"

	"github.com/seojinp/point-ledger/internal/models"
)

// Ledger holds the current balance record per user. The backing substrate may
// answer with variable latency; callers must not assume Read/Commit are
// instantaneous.
type Ledger interface {
	// Read returns the stored record, or a zero-balance record if the user
	// has never transacted.
	Read(ctx context.Context, userID int64) (models.UserPoint, error)
	// Commit atomically replaces the record. The write is visible to any
	// Read that starts after Commit returns.
	Commit(ctx context.Context, userID, point, updateMillis int64) (models.UserPoint, error)
}

// History is the append-only transaction log.
type History interface {
	// Append stores a new entry under the next global id and returns it.
	Append(ctx context.Context, userID, amount int64, kind models.TransactionType, timeMillis int64) (models.PointHistory, error)
	// Query returns all entries for the user in append order.
	Query(ctx context.Context, userID int64) ([]models.PointHistory, error)
}
