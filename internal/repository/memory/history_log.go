package memory

import (
	"context"
	"sync"
	"time"

	"github.com/seojinp/point-ledger/internal/models"
)

// HistoryLog is an in-memory append-only log. Ids come from a cursor that
// starts at 1 and is advanced under the same lock that appends the entry, so
// id order always equals append order.
type HistoryLog struct {
	mu       sync.RWMutex
	entries  []models.PointHistory
	cursor   int64
	maxDelay time.Duration
}

func NewHistoryLog(maxDelay time.Duration) *HistoryLog {
	return &HistoryLog{cursor: 1, maxDelay: maxDelay}
}

func (l *HistoryLog) Append(ctx context.Context, userID, amount int64, kind models.TransactionType, timeMillis int64) (models.PointHistory, error) {
	if err := sleep(ctx, l.maxDelay); err != nil {
		return models.PointHistory{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := models.PointHistory{
		ID:         l.cursor,
		UserID:     userID,
		Amount:     amount,
		Type:       kind,
		TimeMillis: timeMillis,
	}
	l.cursor++
	l.entries = append(l.entries, entry)
	return entry, nil
}

func (l *HistoryLog) Query(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.PointHistory
	for _, e := range l.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}
