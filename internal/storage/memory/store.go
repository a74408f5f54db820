package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
)

// MemoryStatementStore is the in-memory implementation of
// interfaces.StatementStore. Statements live in an append-only slice with
// an id index; one mutex covers both, so every operation observes a
// consistent snapshot.
type MemoryStatementStore struct {
	mu         sync.Mutex
	statements []models.Statement
	byID       map[string]int // statement id -> index into statements
}

// NewMemoryStatementStore creates an empty in-memory store.
func NewMemoryStatementStore() *MemoryStatementStore {
	return &MemoryStatementStore{
		statements: make([]models.Statement, 0),
		byID:       make(map[string]int),
	}
}

// Append stores a validated statement. Missing id and created_at are
// assigned here so callers can hand in partially-built statements in tests.
func (m *MemoryStatementStore) Append(ctx context.Context, statement models.Statement) (models.Statement, error) {
	if err := ctx.Err(); err != nil {
		return models.Statement{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if statement.ID == "" {
		statement.ID = uuid.New().String()
	}
	if statement.CreatedAt.IsZero() {
		statement.CreatedAt = time.Now().UTC()
	}

	m.byID[statement.ID] = len(m.statements)
	m.statements = append(m.statements, statement)
	return statement, nil
}

// BalanceOf folds the user's statements into deposits minus withdrawals.
// A user with no statements has balance zero.
func (m *MemoryStatementStore) BalanceOf(ctx context.Context, userID string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	balance := decimal.Zero
	for _, s := range m.statements {
		if s.UserID == userID {
			balance = balance.Add(s.Signed())
		}
	}
	return balance, nil
}

// ListFor returns a copy of the user's statements in creation order, so
// callers cannot mutate the store's state through the result.
func (m *MemoryStatementStore) ListFor(ctx context.Context, userID string) ([]models.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.Statement, 0)
	for _, s := range m.statements {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

// FindByID returns one statement or models.ErrStatementNotFound.
func (m *MemoryStatementStore) FindByID(ctx context.Context, statementID string) (models.Statement, error) {
	if err := ctx.Err(); err != nil {
		return models.Statement{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.byID[statementID]
	if !ok {
		return models.Statement{}, models.ErrStatementNotFound
	}
	return m.statements[idx], nil
}

// Compile-time check: ensure MemoryStatementStore implements StatementStore
var _ interfaces.StatementStore = (*MemoryStatementStore)(nil)
