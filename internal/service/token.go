package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/cache"
	"github.com/Leplik500/rebuilder-user-service/internal/models"
	"github.com/Leplik500/rebuilder-user-service/internal/pkg/log"
	"github.com/Leplik500/rebuilder-user-service/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type accessClaims struct {
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// generateAccessToken подписывает access-токен и сохраняет его в хранилище.
// jti совпадает с ID записи access_tokens.
func (s *Service) generateAccessToken(ctx context.Context, user *models.User, now time.Time) (*models.AccessToken, error) {
	const op = "service.token.generateAccessToken"

	lg := log.From(ctx)

	tokenID := uuid.New()
	expiresAt := now.Add(s.cfg.Auth.AccessTokenTTL)

	claims := accessClaims{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Auth.Issuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	access := &models.AccessToken{
		ID:        tokenID,
		UserID:    user.ID,
		Token:     signed,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := s.storage.SaveAccessToken(ctx, access); err != nil {
		lg.Error("save_access_token_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return access, nil
}

// generateRefreshToken создаёт новый refresh-токен и возвращает его секрет.
// В БД сохраняется только хэш; при коллизии хэша генерация повторяется.
func (s *Service) generateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	const (
		op          = "service.token.generateRefreshToken"
		maxAttempts = 5
	)

	lg := log.From(ctx)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			lg.Error("refresh_rand_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}
		plain := base64.RawURLEncoding.EncodeToString(b)
		hash := hashToken(plain)

		now := time.Now().UTC()
		token := &models.RefreshToken{
			ID:        uuid.New(),
			TokenHash: hash,
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cfg.Auth.RefreshTokenTTL),
			Revoked:   false,
		}

		if err := s.storage.SaveRefreshToken(ctx, token); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия — пробуем сгенерировать заново.
				continue
			}

			lg.Error("save_refresh_token_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}

		s.cacheRefresh(ctx, hash, token)

		return plain, nil
	}

	lg.Error("refresh_collision_exceeded",
		slog.String("op", op),
	)

	return "", fmt.Errorf("%s: %w", op, ErrRefreshTokenCollision)
}

// issueTokenPair выпускает пару access+refresh для пользователя.
func (s *Service) issueTokenPair(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	const op = "service.token.issueTokenPair"

	now := time.Now().UTC()

	access, err := s.generateAccessToken(ctx, user, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plain, err := s.generateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:  access.Token,
		RefreshToken: plain,
		ExpiresAt:    access.ExpiresAt,
	}, nil
}

// validateRefreshToken валидирует refresh-токен по секрету.
// Порядок проверок фиксирован: наличие → срок → отзыв.
func (s *Service) validateRefreshToken(ctx context.Context, plain string) (*models.RefreshToken, error) {
	const op = "service.token.validateRefreshToken"

	lg := log.From(ctx)

	hash := hashToken(plain)

	token, fromCache := s.cachedRefresh(ctx, hash)
	if token == nil {
		var err error
		token, err = s.storage.RefreshTokenByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				lg.Warn("refresh_lookup_not_found",
					slog.String("op", op),
				)
				return nil, fmt.Errorf("%s: %w", op, ErrTokenNotFound)
			}

			lg.Error("refresh_lookup_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return nil, failInternal(op, err)
		}
	}

	now := time.Now().UTC()

	if now.After(token.ExpiresAt) {
		lg.Warn("refresh_expired",
			slog.String("op", op),
			slog.String("user_id", token.UserID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
	}

	if token.Revoked {
		lg.Warn("refresh_revoked",
			slog.String("op", op),
			slog.String("user_id", token.UserID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	if !fromCache {
		s.cacheRefresh(ctx, hash, token)
	}

	return token, nil
}

// cachedRefresh достаёт состояние refresh-токена из кэша (если он включён).
// Ошибки кэша не фатальны: источником истины остаётся хранилище.
func (s *Service) cachedRefresh(ctx context.Context, hash string) (*models.RefreshToken, bool) {
	if s.rcache == nil {
		return nil, false
	}

	entry, ok, err := s.rcache.Get(ctx, hash)
	if err != nil || !ok {
		if err != nil {
			log.From(ctx).Warn("refresh_cache_get_failed", slog.String("err", err.Error()))
		}
		return nil, false
	}

	return &models.RefreshToken{
		TokenHash: hash,
		UserID:    entry.UserID,
		ExpiresAt: entry.ExpiresAt,
		Revoked:   entry.Revoked,
	}, true
}

// cacheRefresh кладёт состояние токена в кэш на остаток его жизни (best effort).
func (s *Service) cacheRefresh(ctx context.Context, hash string, token *models.RefreshToken) {
	if s.rcache == nil {
		return
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return
	}

	entry := &cache.RefreshEntry{
		UserID:    token.UserID,
		Revoked:   token.Revoked,
		ExpiresAt: token.ExpiresAt,
	}

	if err := s.rcache.Set(ctx, hash, entry, ttl); err != nil {
		log.From(ctx).Warn("refresh_cache_set_failed", slog.String("err", err.Error()))
	}
}

// hashToken — каноническое хэширование секрета refresh-токена (sha256 → base64url).
func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
