package interfaces

import (
	"context"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
)

// UsersService is the narrow capability the ledger needs from the external
// user system. The ledger never manages credentials or profiles; it only
// confirms a user id exists and reads public profile data.
type UsersService interface {
	Exists(ctx context.Context, userID string) (bool, error)

	// Profile returns the user's public profile, or models.ErrUserNotFound.
	Profile(ctx context.Context, userID string) (models.User, error)
}
