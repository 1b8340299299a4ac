package models

type TransactionType string

const (
	TxnCharge TransactionType = "CHARGE"
	TxnUse    TransactionType = "USE"
)

// UserPoint is the current balance record for one user. A user without a
// record is a valid zero-balance account, not an error.
type UserPoint struct {
	UserID       int64 `json:"user_id"`
	Point        int64 `json:"point"`
	UpdateMillis int64 `json:"update_millis"`
}

// PointHistory is one completed charge or use. Entries are immutable once
// appended; ID is globally increasing and assigned in append order.
type PointHistory struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Amount     int64           `json:"amount"`
	Type       TransactionType `json:"type"`
	TimeMillis int64           `json:"time_millis"`
}
