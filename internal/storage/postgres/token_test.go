package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/Leplik500/rebuilder-user-service/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedRefreshToken(t *testing.T, st *Storage, userID uuid.UUID, hash string, expiresAt time.Time) *models.RefreshToken {
	t.Helper()

	now := time.Now().UTC()
	token := &models.RefreshToken{
		ID:        uuid.New(),
		TokenHash: hash,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, st.SaveRefreshToken(context.Background(), token))
	return token
}

// TestIntegration_SaveAccessToken_OK — сохранение access-токена.
func TestIntegration_SaveAccessToken_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	user := seedUser(t, st, "user@example.com", "athlete")

	now := time.Now().UTC()
	access := &models.AccessToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "signed.jwt.value",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, st.SaveAccessToken(context.Background(), access))
}

// TestIntegration_SaveRefreshToken_And_LookupByHash_OK — сохранение и выборка по хэшу.
func TestIntegration_SaveRefreshToken_And_LookupByHash_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	user := seedUser(t, st, "user@example.com", "athlete")
	token := seedRefreshToken(t, st, user.ID, "hash-1", time.Now().UTC().Add(24*time.Hour))

	got, err := st.RefreshTokenByHash(context.Background(), "hash-1")
	require.NoError(t, err)
	require.Equal(t, token.ID, got.ID)
	require.Equal(t, user.ID, got.UserID)
	require.False(t, got.Revoked)
}

// TestIntegration_SaveRefreshToken_DuplicateHash — уникальность token_hash,
// ожидаем storage.ErrAlreadyExists.
func TestIntegration_SaveRefreshToken_DuplicateHash(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	user := seedUser(t, st, "user@example.com", "athlete")
	seedRefreshToken(t, st, user.ID, "hash-1", time.Now().UTC().Add(24*time.Hour))

	now := time.Now().UTC()
	dup := &models.RefreshToken{
		ID:        uuid.New(),
		TokenHash: "hash-1",
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	err := st.SaveRefreshToken(context.Background(), dup)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

// TestIntegration_RevokeRefreshToken_Semantics — контракт отзыва:
// (true,nil) при первом отзыве, (false,nil) при повторном, ErrNotFound для чужого хэша.
func TestIntegration_RevokeRefreshToken_Semantics(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	user := seedUser(t, st, "user@example.com", "athlete")
	seedRefreshToken(t, st, user.ID, "hash-1", time.Now().UTC().Add(24*time.Hour))

	revoked, err := st.RevokeRefreshToken(context.Background(), "hash-1")
	require.NoError(t, err)
	require.True(t, revoked)

	got, err := st.RefreshTokenByHash(context.Background(), "hash-1")
	require.NoError(t, err)
	require.True(t, got.Revoked)

	revoked, err = st.RevokeRefreshToken(context.Background(), "hash-1")
	require.NoError(t, err)
	require.False(t, revoked)

	_, err = st.RevokeRefreshToken(context.Background(), "unknown-hash")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_DeleteExpiredTokens — janitor удаляет только просроченные записи.
func TestIntegration_DeleteExpiredTokens(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	user := seedUser(t, st, "user@example.com", "athlete")
	seedRefreshToken(t, st, user.ID, "expired", time.Now().UTC().Add(-time.Hour))
	seedRefreshToken(t, st, user.ID, "alive", time.Now().UTC().Add(time.Hour))

	require.NoError(t, st.DeleteExpiredTokens(context.Background(), time.Now().UTC()))

	_, err := st.RefreshTokenByHash(context.Background(), "expired")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.RefreshTokenByHash(context.Background(), "alive")
	require.NoError(t, err)
}
