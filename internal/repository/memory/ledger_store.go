package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/seojinp/point-ledger/internal/models"
)

// LedgerStore keeps balance records in process memory and answers after a
// random delay of up to maxDelay, modeling the response time of a real
// storage substrate. A zero maxDelay disables the delay.
type LedgerStore struct {
	mu       sync.RWMutex
	records  map[int64]models.UserPoint
	maxDelay time.Duration
}

func NewLedgerStore(maxDelay time.Duration) *LedgerStore {
	return &LedgerStore{
		records:  make(map[int64]models.UserPoint),
		maxDelay: maxDelay,
	}
}

func (s *LedgerStore) Read(ctx context.Context, userID int64) (models.UserPoint, error) {
	if err := sleep(ctx, s.maxDelay); err != nil {
		return models.UserPoint{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.records[userID]; ok {
		return rec, nil
	}
	return models.UserPoint{UserID: userID}, nil
}

func (s *LedgerStore) Commit(ctx context.Context, userID, point, updateMillis int64) (models.UserPoint, error) {
	if err := sleep(ctx, s.maxDelay); err != nil {
		return models.UserPoint{}, err
	}
	rec := models.UserPoint{UserID: userID, Point: point, UpdateMillis: updateMillis}
	s.mu.Lock()
	s.records[userID] = rec
	s.mu.Unlock()
	return rec, nil
}

// sleep blocks for a random duration in [0, max), or until ctx is done.
func sleep(ctx context.Context, max time.Duration) error {
	if max <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t := time.NewTimer(time.Duration(rand.Int63n(int64(max))))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
