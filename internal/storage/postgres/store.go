package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
)

// PostgresStatementStore persists statements in a single append-only table:
//
//	CREATE TABLE statements (
//	    id          TEXT PRIMARY KEY,
//	    user_id     TEXT NOT NULL,
//	    type        TEXT NOT NULL,
//	    amount      NUMERIC(20,4) NOT NULL,
//	    description TEXT NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX statements_user_id_idx ON statements (user_id);
type PostgresStatementStore struct {
	db *sql.DB
}

func NewPostgresStatementStore(db *sql.DB) *PostgresStatementStore {
	return &PostgresStatementStore{
		db: db,
	}
}

func (p *PostgresStatementStore) Append(ctx context.Context, statement models.Statement) (models.Statement, error) {
	const query = `INSERT INTO statements (id, user_id, type, amount, description, created_at)
	VALUES ($1,$2,$3,$4,$5,$6)`

	if statement.ID == "" {
		statement.ID = uuid.New().String()
	}
	if statement.CreatedAt.IsZero() {
		statement.CreatedAt = time.Now().UTC()
	}

	_, err := p.db.ExecContext(ctx, query,
		statement.ID,
		statement.UserID,
		statement.Type.String(),
		statement.Amount,
		statement.Description,
		statement.CreatedAt,
	)
	if err != nil {
		return models.Statement{}, err
	}
	return statement, nil
}

func (p *PostgresStatementStore) BalanceOf(ctx context.Context, userID string) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)
	FROM statements WHERE user_id = $1`

	var balance decimal.Decimal
	if err := p.db.QueryRowContext(ctx, query, userID).Scan(&balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (p *PostgresStatementStore) ListFor(ctx context.Context, userID string) ([]models.Statement, error) {
	const query = `SELECT id, user_id, type, amount, description, created_at FROM statements
	WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := p.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statements := make([]models.Statement, 0)
	for rows.Next() {
		statement, err := scanStatement(rows)
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *PostgresStatementStore) FindByID(ctx context.Context, statementID string) (models.Statement, error) {
	const query = `SELECT id, user_id, type, amount, description, created_at FROM statements
	WHERE id = $1`

	statement, err := scanStatement(p.db.QueryRowContext(ctx, query, statementID))
	if err == sql.ErrNoRows {
		return models.Statement{}, models.ErrStatementNotFound
	}
	if err != nil {
		return models.Statement{}, err
	}
	return statement, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatement(row rowScanner) (models.Statement, error) {
	var (
		statement models.Statement
		opType    string
	)
	err := row.Scan(
		&statement.ID,
		&statement.UserID,
		&opType,
		&statement.Amount,
		&statement.Description,
		&statement.CreatedAt,
	)
	if err != nil {
		return models.Statement{}, err
	}

	statement.Type, err = models.ParseOperationType(opType)
	if err != nil {
		return models.Statement{}, err
	}
	return statement, nil
}

var _ interfaces.StatementStore = (*PostgresStatementStore)(nil)
