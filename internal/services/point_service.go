package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seojinp/point-ledger/internal/keyed"
	"github.com/seojinp/point-ledger/internal/models"
	repo "github.com/seojinp/point-ledger/internal/repository"
)

// PointService orchestrates balance reads and mutations. Every mutation for a
// user runs inside that user's exclusion, so two concurrent charges can never
// read the same pre-mutation balance; operations on different users overlap
// freely.
type PointService struct {
	ledger  repo.Ledger
	history repo.History
	keys    *keyed.Serializer
}

func NewPointService(l repo.Ledger, h repo.History, keys *keyed.Serializer) *PointService {
	return &PointService{ledger: l, history: h, keys: keys}
}

// Keys exposes the per-user serializer, e.g. for queue-depth metrics.
func (s *PointService) Keys() *keyed.Serializer { return s.keys }

// GetPoint reads the current balance. No exclusion: commits are atomic, so a
// reader sees a whole pre- or post-commit record, never a torn one.
func (s *PointService) GetPoint(ctx context.Context, userID int64) (models.UserPoint, error) {
	return s.ledger.Read(ctx, userID)
}

// GetHistories returns the user's transactions in the order they were
// serialized.
func (s *PointService) GetHistories(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	return s.history.Query(ctx, userID)
}

// Charge adds amount to the user's balance and appends a CHARGE entry.
func (s *PointService) Charge(ctx context.Context, userID, amount int64) (models.UserPoint, error) {
	if amount <= 0 {
		return models.UserPoint{}, ErrInvalidAmount
	}
	return s.mutate(ctx, userID, func(current models.UserPoint) (int64, models.TransactionType, error) {
		return current.Point + amount, models.TxnCharge, nil
	}, amount)
}

// Use subtracts amount from the user's balance and appends a USE entry. The
// balance check happens after the exclusion is acquired, so it can never pass
// against a stale value.
func (s *PointService) Use(ctx context.Context, userID, amount int64) (models.UserPoint, error) {
	if amount <= 0 {
		return models.UserPoint{}, ErrInvalidAmount
	}
	return s.mutate(ctx, userID, func(current models.UserPoint) (int64, models.TransactionType, error) {
		if amount > current.Point {
			return 0, "", ErrInsufficientBalance
		}
		return current.Point - amount, models.TxnUse, nil
	}, amount)
}

// mutate runs one read-modify-write-append cycle under the user's exclusion.
// The commit and the history append form one logical unit: if the append
// fails, the previous balance is re-committed before the exclusion is
// released, so a committed balance without a matching history entry is never
// observable.
func (s *PointService) mutate(ctx context.Context, userID int64, compute func(models.UserPoint) (int64, models.TransactionType, error), amount int64) (models.UserPoint, error) {
	var out models.UserPoint
	err := s.keys.RunExclusive(ctx, userID, func() error {
		// Once the exclusion is granted the unit runs to completion. A
		// caller disconnect must not abort the rollback path, or a
		// commit could outlive its history append.
		ctx := context.WithoutCancel(ctx)

		current, err := s.ledger.Read(ctx, userID)
		if err != nil {
			return fmt.Errorf("read balance: %w", err)
		}

		next, kind, err := compute(current)
		if err != nil {
			return err
		}

		updated, err := s.ledger.Commit(ctx, userID, next, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCommitFailed, err)
		}

		if _, err := s.history.Append(ctx, userID, amount, kind, updated.UpdateMillis); err != nil {
			slog.Error("history append failed, rolling back balance",
				"user_id", userID, "kind", kind, "err", err)
			if _, rbErr := s.ledger.Commit(ctx, userID, current.Point, current.UpdateMillis); rbErr != nil {
				return fmt.Errorf("%w: append failed (%v), rollback failed (%v)", ErrCommitFailed, err, rbErr)
			}
			return fmt.Errorf("%w: %v", ErrCommitFailed, err)
		}

		out = updated
		return nil
	})
	if err != nil {
		return models.UserPoint{}, err
	}
	return out, nil
}
