package memory

import (
	"time"

	repo "github.com/seojinp/point-ledger/internal/repository"
)

type Repositories struct {
	Ledger  repo.Ledger
	History repo.History
}

func NewRepositories(ledgerDelay, historyDelay time.Duration) Repositories {
	return Repositories{
		Ledger:  NewLedgerStore(ledgerDelay),
		History: NewHistoryLog(historyDelay),
	}
}
