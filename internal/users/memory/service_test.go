package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/statement-ledger-engine/internal/models"
)

func TestSeedAndExists(t *testing.T) {
	service := NewMemoryUsersService()

	user := service.Seed("User Test", "test@test.com")
	assert.NotEmpty(t, user.ID)

	exists, err := service.Exists(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = service.Exists(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProfile(t *testing.T) {
	service := NewMemoryUsersService()
	user := service.Seed("User Test", "test@test.com")

	profile, err := service.Profile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "User Test", profile.Name)
	assert.Equal(t, "test@test.com", profile.Email)

	_, err = service.Profile(context.Background(), "unknown")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}
