package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/seojinp/point-ledger/internal/repository"
)

type Repositories struct {
	Ledger  repo.Ledger
	History repo.History
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Ledger:  &ledgerStore{pool},
		History: &historyLog{pool},
	}
}
