package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
)

func TestAppend_AssignsStoreFields(t *testing.T) {
	store := NewMemoryStatementStore()

	statement, err := store.Append(context.Background(), models.Statement{
		UserID: "u1",
		Type:   models.OperationDeposit,
		Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, statement.ID)
	assert.False(t, statement.CreatedAt.IsZero())

	found, err := store.FindByID(context.Background(), statement.ID)
	require.NoError(t, err)
	assert.Equal(t, statement, found)
}

func TestBalanceOf_FoldsSignedAmounts(t *testing.T) {
	store := NewMemoryStatementStore()
	ctx := context.Background()

	_, err := store.Append(ctx, models.Statement{UserID: "u1", Type: models.OperationDeposit, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = store.Append(ctx, models.Statement{UserID: "u1", Type: models.OperationWithdraw, Amount: decimal.NewFromInt(40)})
	require.NoError(t, err)
	_, err = store.Append(ctx, models.Statement{UserID: "u2", Type: models.OperationDeposit, Amount: decimal.NewFromInt(7)})
	require.NoError(t, err)

	balance, err := store.BalanceOf(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(60)))

	balance, err = store.BalanceOf(ctx, "u2")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(7)))
}

func TestBalanceOf_NoStatementsIsZero(t *testing.T) {
	store := NewMemoryStatementStore()

	balance, err := store.BalanceOf(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestListFor_CreationOrderAndIsolation(t *testing.T) {
	store := NewMemoryStatementStore()
	ctx := context.Background()

	for _, desc := range []string{"a", "b", "c"} {
		_, err := store.Append(ctx, models.Statement{UserID: "u1", Type: models.OperationDeposit, Amount: decimal.NewFromInt(1), Description: desc})
		require.NoError(t, err)
	}

	listed, err := store.ListFor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "a", listed[0].Description)
	assert.Equal(t, "b", listed[1].Description)
	assert.Equal(t, "c", listed[2].Description)

	// mutating the returned slice must not touch the store
	listed[0].Description = "mutated"
	again, err := store.ListFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Description)
}

func TestFindByID_NotFound(t *testing.T) {
	store := NewMemoryStatementStore()

	_, err := store.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrStatementNotFound)
}

func TestAppend_CancelledContext(t *testing.T) {
	store := NewMemoryStatementStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Append(ctx, models.Statement{UserID: "u1", Type: models.OperationDeposit, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, context.Canceled)

	listed, err := store.ListFor(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
