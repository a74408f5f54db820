package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the closed set of ledger operation kinds.
// New kinds (e.g. transfer) must be added here and handled explicitly
// wherever the type is switched on.
type OperationType uint8

const (
	OperationDeposit OperationType = iota + 1
	OperationWithdraw
)

// String returns the wire name of the operation type.
func (t OperationType) String() string {
	switch t {
	case OperationDeposit:
		return "deposit"
	case OperationWithdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the known operation kinds.
func (t OperationType) Valid() bool {
	return t == OperationDeposit || t == OperationWithdraw
}

// ParseOperationType maps a wire name ("deposit", "withdraw") to its
// OperationType. Unrecognized names fail with ErrInvalidOperationType.
func ParseOperationType(s string) (OperationType, error) {
	switch s {
	case "deposit":
		return OperationDeposit, nil
	case "withdraw":
		return OperationWithdraw, nil
	default:
		return 0, ErrInvalidOperationType
	}
}

// MarshalText implements encoding.TextMarshaler so the type serializes
// as its wire name in JSON.
func (t OperationType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *OperationType) UnmarshalText(b []byte) error {
	parsed, err := ParseOperationType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Statement is one immutable ledger entry: a deposit into or a withdrawal
// from a single user's funds. Once persisted it is never updated or deleted.
type Statement struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        OperationType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Signed returns the statement's contribution to its user's balance:
// positive for deposits, negative for withdrawals.
func (s Statement) Signed() decimal.Decimal {
	if s.Type == OperationWithdraw {
		return s.Amount.Neg()
	}
	return s.Amount
}

// BalanceReport is the result of a balance query. Statement is populated
// only when history was requested.
type BalanceReport struct {
	Balance   decimal.Decimal `json:"balance"`
	Statement []Statement     `json:"statement,omitempty"`
}
