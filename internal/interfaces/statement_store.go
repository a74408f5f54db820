package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
)

// StatementStore is the append-only persistence boundary of the ledger.
// Append is the only mutator; stores guarantee atomic insertion but do not
// enforce business rules — validation happens in the ledger engine before
// a statement ever reaches the store.
type StatementStore interface {
	// Append persists a fully-validated statement and returns it with
	// store-assigned fields (id, created_at) filled in when they were empty.
	Append(ctx context.Context, statement models.Statement) (models.Statement, error)

	// BalanceOf returns deposits minus withdrawals over the user's
	// statements. A user with no statements has balance zero.
	BalanceOf(ctx context.Context, userID string) (decimal.Decimal, error)

	// ListFor returns the user's statements in creation order.
	ListFor(ctx context.Context, userID string) ([]models.Statement, error)

	// FindByID returns one statement, or models.ErrStatementNotFound.
	FindByID(ctx context.Context, statementID string) (models.Statement, error)
}
