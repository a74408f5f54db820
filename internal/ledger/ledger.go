package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
	"github.com/sheikh-saqib/statement-ledger-engine/internal/models/events"
)

// TopicStatementCreated is the topic statement_created events are published to.
const TopicStatementCreated = "statement_created"

// Ledger is the statement engine: the write-path gate that validates and
// commits new statements, and the read path for balances and lookups.
// It holds a per-user mutex map so the funds check and the append run as
// one unit for a given user, while writes for different users proceed
// independently.
type Ledger struct {
	store  interfaces.StatementStore
	users  interfaces.UsersService
	events interfaces.EventPublisher // optional, may be nil
	log    *logrus.Logger

	muMap map[string]*sync.Mutex // per-user write locks
	mapMu sync.Mutex             // protects the muMap itself
}

// NewLedger creates a Ledger over a storage implementation and the external
// users collaborator. publisher may be nil when no event sink is wired.
func NewLedger(store interfaces.StatementStore, users interfaces.UsersService, publisher interfaces.EventPublisher, log *logrus.Logger) *Ledger {
	return &Ledger{
		store:  store,
		users:  users,
		events: publisher,
		log:    log,
		muMap:  make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) getUserLock(userID string) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[userID]; !exists {
		l.muMap[userID] = &sync.Mutex{}
	}
	return l.muMap[userID]
}

// CreateStatement validates and commits one ledger entry.
//
// Validation order: operation kind and amount first (no collaborator or
// store call on bad input), then user existence, then the funds check for
// withdrawals. The per-user lock is held from before the funds check until
// the append has committed, so two concurrent withdrawals cannot both
// observe the same balance and overdraw the account together.
//
// On success exactly one statement has been persisted; on any failure the
// store is untouched.
func (l *Ledger) CreateStatement(ctx context.Context, userID string, opType models.OperationType, amount decimal.Decimal, description string) (models.Statement, error) {
	if !opType.Valid() {
		return models.Statement{}, models.ErrInvalidOperationType
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return models.Statement{}, models.ErrInvalidAmount
	}

	exists, err := l.users.Exists(ctx, userID)
	if err != nil {
		return models.Statement{}, err
	}
	if !exists {
		return models.Statement{}, models.ErrUserNotFound
	}

	mu := l.getUserLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if opType == models.OperationWithdraw {
		balance, err := l.store.BalanceOf(ctx, userID)
		if err != nil {
			return models.Statement{}, err
		}
		if amount.GreaterThan(balance) {
			return models.Statement{}, models.ErrInsufficientFunds
		}
	}

	statement := models.Statement{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        opType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	persisted, err := l.store.Append(ctx, statement)
	if err != nil {
		return models.Statement{}, err
	}

	l.log.WithFields(logrus.Fields{
		"statement_id": persisted.ID,
		"user_id":      persisted.UserID,
		"type":         persisted.Type.String(),
		"amount":       persisted.Amount.String(),
	}).Info("statement created")

	l.publishCreated(persisted)

	return persisted, nil
}

// publishCreated emits a statement_created event. The statement is already
// durable, so a publish failure is logged and does not fail the create.
func (l *Ledger) publishCreated(statement models.Statement) {
	if l.events == nil {
		return
	}

	event := events.StatementCreated{
		StatementID: statement.ID,
		UserID:      statement.UserID,
		Type:        statement.Type.String(),
		Amount:      statement.Amount,
		Description: statement.Description,
		OccurredAt:  statement.CreatedAt,
	}

	if err := l.events.Publish(TopicStatementCreated, event); err != nil {
		l.log.WithError(err).WithField("statement_id", statement.ID).
			Warn("failed to publish statement_created event")
	}
}

// GetBalance returns the user's current balance, with the full statement
// history when includeHistory is set. Pure read.
func (l *Ledger) GetBalance(ctx context.Context, userID string, includeHistory bool) (models.BalanceReport, error) {
	exists, err := l.users.Exists(ctx, userID)
	if err != nil {
		return models.BalanceReport{}, err
	}
	if !exists {
		return models.BalanceReport{}, models.ErrUserNotFound
	}

	balance, err := l.store.BalanceOf(ctx, userID)
	if err != nil {
		return models.BalanceReport{}, err
	}

	report := models.BalanceReport{Balance: balance}
	if includeHistory {
		statements, err := l.store.ListFor(ctx, userID)
		if err != nil {
			return models.BalanceReport{}, err
		}
		report.Statement = statements
	}
	return report, nil
}

// GetStatementOperation returns one statement by id after confirming the
// requesting user exists.
//
// Note: the returned statement's UserID is not cross-checked against the
// requesting userID, so any known user can fetch any statement by id.
// Callers that need ownership enforcement must compare UserID themselves;
// tightening this here would be a behavior change for existing consumers.
func (l *Ledger) GetStatementOperation(ctx context.Context, userID, statementID string) (models.Statement, error) {
	exists, err := l.users.Exists(ctx, userID)
	if err != nil {
		return models.Statement{}, err
	}
	if !exists {
		return models.Statement{}, models.ErrUserNotFound
	}

	return l.store.FindByID(ctx, statementID)
}
