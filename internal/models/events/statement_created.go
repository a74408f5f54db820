package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementCreated is emitted after a statement has been committed.
type StatementCreated struct {
	StatementID string          `json:"statement_id"`
	UserID      string          `json:"user_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
