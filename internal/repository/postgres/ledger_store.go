package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seojinp/point-ledger/internal/models"
)

type ledgerStore struct{ pool *pgxpool.Pool }

func (s *ledgerStore) Read(ctx context.Context, userID int64) (models.UserPoint, error) {
	var rec models.UserPoint
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, point, update_millis
		   FROM user_points
		  WHERE user_id=$1`,
		userID,
	).Scan(&rec.UserID, &rec.Point, &rec.UpdateMillis)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.UserPoint{UserID: userID}, nil
	}
	return rec, err
}

func (s *ledgerStore) Commit(ctx context.Context, userID, point, updateMillis int64) (models.UserPoint, error) {
	var rec models.UserPoint
	err := s.pool.QueryRow(ctx,
		`INSERT INTO user_points(user_id, point, update_millis)
		 VALUES($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		    SET point = EXCLUDED.point,
		        update_millis = EXCLUDED.update_millis
		 RETURNING user_id, point, update_millis`,
		userID, point, updateMillis,
	).Scan(&rec.UserID, &rec.Point, &rec.UpdateMillis)
	return rec, err
}
