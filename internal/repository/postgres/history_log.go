package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seojinp/point-ledger/internal/models"
)

type historyLog struct{ pool *pgxpool.Pool }

func (l *historyLog) Append(ctx context.Context, userID, amount int64, kind models.TransactionType, timeMillis int64) (models.PointHistory, error) {
	entry := models.PointHistory{
		UserID:     userID,
		Amount:     amount,
		Type:       kind,
		TimeMillis: timeMillis,
	}
	err := l.pool.QueryRow(ctx,
		`INSERT INTO point_histories(user_id, amount, type, time_millis)
		 VALUES($1, $2, $3, $4)
		 RETURNING id`,
		userID, amount, kind, timeMillis,
	).Scan(&entry.ID)
	return entry, err
}

func (l *historyLog) Query(ctx context.Context, userID int64) ([]models.PointHistory, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, user_id, amount, type, time_millis
		   FROM point_histories
		  WHERE user_id=$1
		  ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PointHistory
	for rows.Next() {
		var e models.PointHistory
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Type, &e.TimeMillis); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
